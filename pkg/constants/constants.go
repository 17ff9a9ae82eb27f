package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	ParamsKey    ContextKey = "params"
	LoggerKey    ContextKey = "logger"
	TenantIDKey  ContextKey = "tenantID"
	SessionKey   ContextKey = "session"
	RequestIDKey ContextKey = "requestID"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())
