package handlers

import (
	"context"
	"contribution-hub/app/server/chain"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/middlewares"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"contribution-hub/app/server/utils"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strings"
)

// tipSession 一次打赏请求里的查询结果，只在这个请求内有效
type tipSession struct {
	a   *App
	ctx context.Context

	users map[uint]*models.User // 按用户 ID 缓存，带上绑定的链上账户

	tx        *chain.Transaction
	txFetched bool
}

func (a *App) newTipSession(ctx context.Context) *tipSession {
	return &tipSession{
		a:     a,
		ctx:   ctx,
		users: map[uint]*models.User{},
	}
}

// address 返回用户在指定链上的地址，已删除的用户没有地址
func (s *tipSession) address(userID uint, blockchain string) (string, error) {
	user, ok := s.users[userID]
	if !ok {
		user = &models.User{}
		if err := s.a.db.WithContext(s.ctx).Preload("BlockchainAccounts").
			First(user, "id = ? AND status = ?", userID, models.UserStatusActive).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return "", err
			}
			user = &models.User{}
		}
		s.users[userID] = user
	}

	return user.ChainAddress(blockchain), nil
}

// transaction 一个请求只向节点查询一次，已经上链的交易内容不会再变，所以也放进 redis
// 节点上找不到的交易返回 nil
func (s *tipSession) transaction(id string) (*chain.Transaction, error) {
	if s.txFetched {
		return s.tx, nil
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyChainTx, id)
	if cacheBytes, err := s.a.rdb.Get(s.ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.a.l.Error("failed to query cache for transaction", zap.String("id", id), zap.Error(err))
		}
	} else {
		var tx chain.Transaction
		if err = json.Unmarshal(cacheBytes, &tx); err != nil {
			s.a.l.Error("failed to unmarshal transaction", zap.String("id", id), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
			s.a.rdb.Del(s.ctx, cacheKey)
		} else {
			s.tx, s.txFetched = &tx, true
			return s.tx, nil
		}
	}

	tx, err := s.a.chain.GetTransaction(s.ctx, id)
	if err != nil {
		if errors.Is(err, chain.ErrTransactionNotFound) {
			// 可能还没有被打包，不缓存
			s.tx, s.txFetched = nil, true
			return nil, nil
		}
		return nil, err
	}

	if cacheBytes, err := json.Marshal(tx); err != nil {
		s.a.l.Error("failed to marshal transaction", zap.String("id", id), zap.Error(err))
	} else {
		s.a.rdb.Set(s.ctx, cacheKey, cacheBytes, constants.CacheExpireChainTx)
	}

	s.tx, s.txFetched = tx, true
	return tx, nil
}

// record 写入打赏记录，已经存在时返回 false
func (s *tipSession) record(tip *models.Tip) (bool, error) {
	var count int64
	if err := s.a.db.WithContext(s.ctx).Model(&models.Tip{}).
		Where("obj_ref = ? AND obj_id = ? AND user_id = ? AND currency = ? AND amount = ? AND data = ?",
			tip.ObjRef, tip.ObjID, tip.UserID, tip.Currency, tip.Amount, tip.Data).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.a.db.WithContext(s.ctx).Create(tip).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 另一个请求抢先写入了同一笔转账
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (a *App) TipCreate(c echo.Context) error {
	jwtUser, ok := middlewares.JWTUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req types.TipInput
	if err := a.bind(c, &req); err != nil {
		return a.erv(c, err)
	}

	_, authorID, err, statusCode := a.findObject(rctx, req.Obj, req.ID)
	if err != nil {
		return a.er(c, statusCode)
	}

	s := a.newTipSession(rctx)
	res := types.TipResult{
		Claims: make([]types.TipClaimResult, 0, len(req.Tips)),
	}

	for _, claim := range req.Tips {
		currency := strings.ToLower(strings.TrimSpace(claim.Currency))
		amount := strings.TrimSpace(claim.Amount)
		result := types.TipClaimResult{Currency: currency, Amount: amount}

		blockchain, supported := constants.TipCurrencyChains[currency]
		if !supported {
			result.Status = constants.TipStatusUnsupportedCurrency
			res.Claims = append(res.Claims, result)
			continue
		}

		to, err := s.address(authorID, blockchain)
		if err != nil {
			a.l.Error("failed to get user", zap.Uint("id", authorID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		from, err := s.address(jwtUser.ID, blockchain)
		if err != nil {
			a.l.Error("failed to get user", zap.Uint("id", jwtUser.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		if to == "" || from == "" {
			result.Status = constants.TipStatusNoLinkedAddress
			res.Claims = append(res.Claims, result)
			continue
		}

		tx, err := s.transaction(req.Data)
		if err != nil {
			a.l.Error("failed to get transaction", zap.String("id", req.Data), zap.Error(err))
			return a.er(c, http.StatusBadGateway, constants.MsgChainUnavailable)
		}
		if tx == nil {
			result.Status = constants.TipStatusTransferNotFound
			res.Claims = append(res.Claims, result)
			continue
		}

		// 金额和链上一致，例如 "1.000 STEEM"
		if _, found := tx.FindTransfer(from, to, amount+" "+strings.ToUpper(currency)); !found {
			result.Status = constants.TipStatusTransferNotFound
			res.Claims = append(res.Claims, result)
			continue
		}

		recorded, err := s.record(&models.Tip{
			ObjRef:    req.Obj,
			ObjID:     req.ID,
			UserID:    jwtUser.ID,
			Currency:  currency,
			Amount:    amount,
			Data:      req.Data,
			Anonymous: req.Anonymous,
		})
		if err != nil {
			a.l.Error("failed to record tip", zap.String("obj", req.Obj), zap.Uint("id", req.ID), zap.String("data", req.Data), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		res.Processed = recorded
		if recorded {
			result.Status = constants.TipStatusRecorded
		} else {
			result.Status = constants.TipStatusDuplicate
		}
		res.Claims = append(res.Claims, result)
	}

	return c.JSON(http.StatusOK, &res)
}

func (a *App) TipAuthorInfo(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return a.er(c, http.StatusUnprocessableEntity)
	}

	_, authorID, err, statusCode := a.findObject(rctx, c.Param("obj"), id)
	if err != nil {
		return a.er(c, statusCode)
	}

	var author models.User
	if err = a.db.WithContext(rctx).Preload("BlockchainAccounts").
		First(&author, "id = ? AND status = ?", authorID, models.UserStatusActive).Error; err != nil {
		// 作者已删除时和对象不存在一样处理
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		a.l.Error("failed to get user", zap.Uint("id", authorID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 没有绑定 steem 账户时两个字段都是 null
	res := types.AuthorInfo{}
	if address := author.ChainAddress(constants.BlockchainSteem); address != "" {
		res.SteemUser = &address
		res.Username = &author.Username
	}

	return c.JSON(http.StatusOK, &res)
}
