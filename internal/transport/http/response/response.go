package response

// Err is the body of every failed request.
type Err struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Error 失败响应（customMsg 为空时用默认文案）
func Error(status int, customMsg string) Err {
	msg := CodeMsgMap[status]
	if customMsg != "" {
		msg = customMsg
	}
	return Err{Message: msg, Status: status}
}

// Message is the body of delete confirmations.
type Message struct {
	Message string `json:"message"`
}

type Token struct {
	Token string `json:"token"`
}
