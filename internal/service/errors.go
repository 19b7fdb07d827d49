package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPostNotEditable     = errors.New("帖子已发布，不可编辑")
	ErrPostStateInvalid    = errors.New("帖子当前状态不可发布")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrNoExternalID        = errors.New("帖子尚未发布成功，无外部 ID")
	ErrNoProvider          = errors.New("未连接社交账号，请先完成账号绑定")
	ErrSyncInProgress      = errors.New("该帖子正在同步中，请稍后重试")
	ErrProfileCreateFailed = errors.New("创建网关 Profile 失败")
	ErrConnectURLFailed    = errors.New("生成账号绑定链接失败")
	ErrReplyRejected       = errors.New("评论回复被网关拒绝")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrPostNotFound:        NotFound,
	ErrPostNotEditable:     BadRequest,
	ErrPostStateInvalid:    BadRequest,
	ErrCommentNotFound:     NotFound,
	ErrNoExternalID:        BadRequest,
	ErrNoProvider:          BadRequest,
	ErrSyncInProgress:      BadRequest,
	ErrProfileCreateFailed: InternalServerError,
	ErrConnectURLFailed:    InternalServerError,
	ErrReplyRejected:       BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
