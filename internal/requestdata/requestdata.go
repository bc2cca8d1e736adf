package requestdata

import (
	"context"

	"github.com/notehive/notehive-backend/internal/types"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData is the verified principal attached to the request context
// by the auth middleware. The JWT subject is the email.
type RequestData struct {
	TokenString string
	Email       string
	Role        types.Role
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
