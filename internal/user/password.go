package user

import (
	"crypto/rand"
	"math/big"
)

const (
	tempPasswordLength = 12
	letters            = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	digits             = "23456789"
)

// GenerateTemporaryPassword returns a random password that satisfies the password rule
// (at least one letter and one digit)
func GenerateTemporaryPassword() (string, error) {
	alphabet := letters + digits
	buf := make([]byte, tempPasswordLength)

	for i := range buf {
		set := alphabet
		switch i {
		case 0:
			set = letters
		case 1:
			set = digits
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return "", err
		}
		buf[i] = set[n.Int64()]
	}

	// 앞 두 자리 고정 위치를 섞는다
	j, err := rand.Int(rand.Reader, big.NewInt(tempPasswordLength))
	if err != nil {
		return "", err
	}
	buf[0], buf[j.Int64()] = buf[j.Int64()], buf[0]

	return string(buf), nil
}
