package errors

import "errors"

// ErrStateNotFound 后端存储中尚无数据快照（首次启动）
var ErrStateNotFound = errors.New("数据快照不存在")
