package handlers

import (
	"context"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/models"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
)

// objectKind 可以被评论、投票、打赏的对象
type objectKind struct {
	// 取出对象作者的 ID
	author func(ctx context.Context, db *gorm.DB, id uint) (uint, error)
	// 写回投票统计
	tally func(ctx context.Context, db *gorm.DB, id uint, up int64, down int64) error
}

func kindOf[M any, P interface {
	*M
	GetAuthorID() uint
}]() objectKind {
	return objectKind{
		author: func(ctx context.Context, db *gorm.DB, id uint) (uint, error) {
			obj := P(new(M))
			if err := db.WithContext(ctx).Select("id", "author_id").First(obj, "id = ?", id).Error; err != nil {
				return 0, err
			}
			return obj.GetAuthorID(), nil
		},
		tally: func(ctx context.Context, db *gorm.DB, id uint, up int64, down int64) error {
			return db.WithContext(ctx).Model(P(new(M))).Where("id = ?", id).Updates(map[string]any{
				"up_votes":   up,
				"down_votes": down,
			}).Error
		},
	}
}

var objectKinds = map[string]objectKind{
	constants.ObjRefArticles: kindOf[models.Article](),
	constants.ObjRefComments: kindOf[models.Comment](),
}

// findObject 确认对象存在，返回类型定义和作者 ID
func (a *App) findObject(ctx context.Context, objRef string, id uint) (*objectKind, uint, error, int) {
	kind, ok := objectKinds[objRef]
	if !ok {
		return nil, 0, fmt.Errorf("unknown object type %q", objRef), http.StatusUnprocessableEntity
	}

	authorID, err := kind.author(ctx, a.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("%s %d not found", objRef, id), http.StatusUnprocessableEntity
		}
		a.l.Error("failed to find object", zap.String("objRef", objRef), zap.Uint("id", id), zap.Error(err))
		return nil, 0, fmt.Errorf("find %s %d: %w", objRef, id, err), http.StatusInternalServerError
	}

	return &kind, authorID, nil, http.StatusOK
}
