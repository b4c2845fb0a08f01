package types

type ErrorMessage struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

// Data 用户相关接口的返回都包在 data 里
type Data[T any] struct {
	Data T `json:"data"`
}
