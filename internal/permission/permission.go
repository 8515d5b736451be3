// Package permission 实现消息操作的访问控制策略。
// 策略是纯函数，不做任何IO，handler在加载对象前后分别做集合级和对象级检查。
package permission

import (
	"github.com/oxtna/message-board/internal/models"
)

// Action 消息操作类型
type Action string

// 消息操作
const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
	ActionFavorite      Action = "favorite"
	ActionUnfavorite    Action = "unfavorite"
)

// Decision 策略判定结果
type Decision int

// 判定结果
const (
	Deny Decision = iota
	Allow
)

// CheckCollection 集合级检查，在加载任何对象之前执行
// 读操作对匿名请求者开放，写操作要求已认证
func CheckCollection(action Action, actor *models.User) Decision {
	switch action {
	case ActionList, ActionRetrieve:
		return Allow
	case ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy,
		ActionFavorite, ActionUnfavorite:
		if actor.IsAuthenticated() {
			return Allow
		}
		return Deny
	}
	return Deny
}

// CheckObject 对象级检查，集合级检查通过后针对具体消息执行
// 修改和删除只允许消息所有者
func CheckObject(action Action, actor *models.User, target *models.Message) Decision {
	switch action {
	case ActionList, ActionRetrieve:
		return Allow
	case ActionCreate, ActionFavorite, ActionUnfavorite:
		if actor.IsAuthenticated() {
			return Allow
		}
		return Deny
	case ActionUpdate, ActionPartialUpdate, ActionDestroy:
		if actor.IsAuthenticated() && target != nil && target.OwnerID == actor.ID {
			return Allow
		}
		return Deny
	}
	return Deny
}
