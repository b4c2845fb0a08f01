package handlers

import (
	"contribution-hub/app/server/middlewares"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"net/http"
)

func (a *App) VoteCast(c echo.Context) error {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req types.VoteInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	kind, _, err, statusCode := a.findObject(rctx, req.ObjRef, req.ObjID)
	if err != nil {
		return a.er(c, statusCode)
	}

	res := types.VoteResult{Dir: req.Dir}
	if err = a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		// 同一个用户对同一个对象只有一票，重复投票时改方向
		vote := models.Vote{
			ObjRef: req.ObjRef,
			ObjID:  req.ObjID,
			UserID: jwtUser.ID,
			Dir:    req.Dir,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "obj_ref"}, {Name: "obj_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"dir", "updated_at"}),
		}).Create(&vote).Error; err != nil {
			return err
		}

		target := tx.Model(&models.Vote{}).Where("obj_ref = ? AND obj_id = ?", req.ObjRef, req.ObjID).Session(&gorm.Session{})
		if err := target.Where("dir > 0").Count(&res.UpVotes).Error; err != nil {
			return err
		}
		if err := target.Where("dir < 0").Count(&res.DownVotes).Error; err != nil {
			return err
		}

		return kind.tally(rctx, tx, req.ObjID, res.UpVotes, res.DownVotes)
	}); err != nil {
		a.l.Error("failed to cast vote", zap.String("objRef", req.ObjRef), zap.Uint("objId", req.ObjID), zap.Uint("user", jwtUser.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &res)
}
