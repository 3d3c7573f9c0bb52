package handler

type ContextKey string

var (
	BatchHandleCtx ContextKey = "batchHandle"
)
