package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomToken 生成 n 字节的安全随机令牌，十六进制编码
func RandomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("generate random token failed")
	}

	return hex.EncodeToString(buf)
}
