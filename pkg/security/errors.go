package security

import "errors"

var (
	// ErrSecretKeyEmpty 签名密钥为空
	ErrSecretKeyEmpty = errors.New("security: secret key is empty")
	// ErrTokenMissing 请求未携带 Token
	ErrTokenMissing = errors.New("security: token is missing")
	// ErrTokenInvalid Token 无效
	ErrTokenInvalid = errors.New("security: token is invalid")
	// ErrTokenExpired Token 已过期
	ErrTokenExpired = errors.New("security: token is expired")
	// ErrTokenNotValidYet Token 尚未生效
	ErrTokenNotValidYet = errors.New("security: token not valid yet")
	// ErrTokenMalformed Token 格式错误
	ErrTokenMalformed = errors.New("security: token is malformed")
	// ErrSignatureInvalid 签名无效
	ErrSignatureInvalid = errors.New("security: token signature is invalid")
	// ErrAlgorithmMismatch 签名算法不匹配
	ErrAlgorithmMismatch = errors.New("security: signing algorithm mismatch")
)
