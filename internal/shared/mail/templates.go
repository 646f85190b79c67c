package mail

import (
	"fmt"
	"html"
	"time"
)

const layout = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="UTF-8"><title>%s</title></head>
<body style="font-family: 'Apple SD Gothic Neo', sans-serif; color: #222;">
<h2>SKKU 갤러리</h2>
%s
<p style="color: #888; font-size: 12px;">본 메일은 발신 전용입니다.</p>
</body>
</html>`

func render(subject, body string) Message {
	return Message{Subject: subject, HTMLBody: fmt.Sprintf(layout, html.EscapeString(subject), body)}
}

func VerificationMessage(to, name, link string, ttl time.Duration) Message {
	msg := render("[SKKU 갤러리] 이메일 인증을 완료해 주세요", fmt.Sprintf(
		`<p>%s님, 가입해 주셔서 감사합니다.</p>
<p>아래 링크를 눌러 이메일 인증을 완료해 주세요. 링크는 %d시간 동안 유효합니다.</p>
<p><a href="%s">이메일 인증하기</a></p>`,
		html.EscapeString(name), int(ttl.Hours()), html.EscapeString(link)))
	msg.To = to
	return msg
}

func PasswordResetMessage(to, name, link string, ttl time.Duration) Message {
	msg := render("[SKKU 갤러리] 비밀번호 재설정 안내", fmt.Sprintf(
		`<p>%s님, 비밀번호 재설정이 요청되었습니다.</p>
<p>아래 링크에서 새 비밀번호를 설정해 주세요. 링크는 %d분 동안 유효합니다.</p>
<p><a href="%s">비밀번호 재설정하기</a></p>
<p>본인이 요청하지 않았다면 이 메일을 무시하셔도 됩니다.</p>`,
		html.EscapeString(name), int(ttl.Minutes()), html.EscapeString(link)))
	msg.To = to
	return msg
}

func TemporaryPasswordMessage(to, name, password string) Message {
	msg := render("[SKKU 갤러리] 임시 비밀번호 안내", fmt.Sprintf(
		`<p>%s님, 관리자에 의해 비밀번호가 초기화되었습니다.</p>
<p>임시 비밀번호: <b style="font-size:18px;">%s</b></p>
<p>로그인 후 반드시 비밀번호를 변경해 주세요.</p>`,
		html.EscapeString(name), html.EscapeString(password)))
	msg.To = to
	return msg
}
