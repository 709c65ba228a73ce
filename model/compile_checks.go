package model

var (
	_ Model = (*Record)(nil)
	_ Hooks = NopHooks{}
)
