package respond

import "regexp"

var (
	// ディレクトリAPIのserviceKeyはURLごとエラーに含まれがち
	serviceKeyPattern = regexp.MustCompile(`(serviceKey=)[^&\s"']+`)

	// DSN内のDBパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// Authorizationヘッダーのトークン
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-_.~+/]+=*`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = serviceKeyPattern.ReplaceAllString(msg, "${1}****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
