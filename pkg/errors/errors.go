package errors

import "errors"

// ErrTransientStore 后端存储瞬时故障：按 (规则,日期) 粒度退避重试后再上抛
var ErrTransientStore = errors.New("存储暂时不可用")
