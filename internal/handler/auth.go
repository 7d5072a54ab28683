package handler

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"connectrpc.com/connect"
)

var (
	errMissingToken = errors.New("missing or invalid Authorization header")
	errForbidden    = errors.New("forbidden")
)

// NewAuthInterceptor は Authorization: Bearer <secret> を検証するインターセプターを作成します
// ヘッダーがない場合は Unauthenticated、トークンが一致しない場合は PermissionDenied を返します
func NewAuthInterceptor(secret string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, ok := strings.CutPrefix(req.Header().Get("Authorization"), "Bearer ")
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, errMissingToken)
			}
			if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(secret)) != 1 {
				return nil, connect.NewError(connect.CodePermissionDenied, errForbidden)
			}
			return next(ctx, req)
		}
	}
}
