package handlers

import (
	"contribution-hub/app/server/chain"
	"contribution-hub/app/server/constants"
	"contribution-hub/app/server/models"
	"contribution-hub/app/server/types"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type tipFixture struct {
	*testEnv
	author  *models.User
	tipper  *models.User
	article *models.Article
}

func newTipFixture(t *testing.T, authorAddress string, tipperAddress string) *tipFixture {
	te := newTestEnv(t)
	author := te.createUser("alice", authorAddress)
	tipper := te.createUser("bob", tipperAddress)

	return &tipFixture{
		testEnv: te,
		author:  author,
		tipper:  tipper,
		article: te.createArticle(author, "Tipped article", "<p>body</p>"),
	}
}

func (f *tipFixture) tip(data string, claims ...types.TipClaim) types.TipResult {
	f.t.Helper()

	rec := f.do(http.MethodPost, "/v1/tip", &types.TipInput{
		Obj:  constants.ObjRefArticles,
		ID:   f.article.ID,
		Tips: claims,
		Data: data,
	}, f.token(f.tipper))
	expectStatus(f.t, rec, http.StatusOK)
	return decode[types.TipResult](f.t, rec)
}

func (f *tipFixture) tipCount() int64 {
	f.t.Helper()

	var count int64
	if err := f.db.Model(&models.Tip{}).Count(&count).Error; err != nil {
		f.t.Fatalf("count tips: %v", err)
	}
	return count
}

func expectClaims(t *testing.T, res types.TipResult, statuses ...string) {
	t.Helper()

	if len(res.Claims) != len(statuses) {
		t.Fatalf("got %d claims, want %d: %+v", len(res.Claims), len(statuses), res.Claims)
	}
	for i, status := range statuses {
		if res.Claims[i].Status != status {
			t.Errorf("claim %d status %s, want %s", i, res.Claims[i].Status, status)
		}
	}
}

func TestTipRecordedOnce(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	f.chain.addTransfers("tx1", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 STEEM"})

	first := f.tip("tx1", types.TipClaim{Currency: "steem", Amount: "1.000"})
	if !first.Processed {
		t.Error("first tip not processed")
	}
	expectClaims(t, first, constants.TipStatusRecorded)

	second := f.tip("tx1", types.TipClaim{Currency: "steem", Amount: "1.000"})
	if second.Processed {
		t.Error("second tip reported as processed")
	}
	expectClaims(t, second, constants.TipStatusDuplicate)

	if n := f.tipCount(); n != 1 {
		t.Errorf("got %d tips, want 1", n)
	}

	// 第二次从缓存读取交易
	if f.chain.calls != 1 {
		t.Errorf("chain queried %d times, want 1", f.chain.calls)
	}
	if !f.mr.Exists(fmt.Sprintf(constants.CacheKeyChainTx, "tx1")) {
		t.Error("transaction not cached")
	}
}

func TestTipCurrencyIsCaseInsensitive(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	f.chain.addTransfers("tx1", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "2.500 SBD"})

	res := f.tip("tx1", types.TipClaim{Currency: "SBD", Amount: "2.500"})
	expectClaims(t, res, constants.TipStatusRecorded)

	var tip models.Tip
	if err := f.db.First(&tip).Error; err != nil {
		t.Fatalf("get tip: %v", err)
	}
	if tip.Currency != "sbd" || tip.Amount != "2.500" || tip.UserID != f.tipper.ID || tip.ObjID != f.article.ID {
		t.Errorf("unexpected tip %+v", tip)
	}
}

func TestTipUnsupportedCurrency(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	f.chain.addTransfers("tx1", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 BTC"})

	res := f.tip("tx1", types.TipClaim{Currency: "btc", Amount: "1.000"})
	if res.Processed {
		t.Error("unsupported currency processed")
	}
	expectClaims(t, res, constants.TipStatusUnsupportedCurrency)

	if n := f.tipCount(); n != 0 {
		t.Errorf("got %d tips, want 0", n)
	}
	if f.chain.calls != 0 {
		t.Errorf("chain queried for unsupported currency")
	}
}

func TestTipWithoutLinkedAddress(t *testing.T) {
	cases := []struct {
		name          string
		authorAddress string
		tipperAddress string
	}{
		{"author without address", "", "bob-steem"},
		{"tipper without address", "alice-steem", ""},
		{"neither has address", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTipFixture(t, tc.authorAddress, tc.tipperAddress)
			f.chain.addTransfers("tx1", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 STEEM"})

			res := f.tip("tx1", types.TipClaim{Currency: "steem", Amount: "1.000"})
			if res.Processed {
				t.Error("tip processed without linked address")
			}
			expectClaims(t, res, constants.TipStatusNoLinkedAddress)

			if n := f.tipCount(); n != 0 {
				t.Errorf("got %d tips, want 0", n)
			}
		})
	}
}

func TestTipTransferMismatch(t *testing.T) {
	cases := []struct {
		name     string
		transfer chain.Transfer
		data     string
	}{
		{"wrong amount", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "0.100 STEEM"}, "tx1"},
		{"wrong currency", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 SBD"}, "tx1"},
		{"wrong sender", chain.Transfer{From: "mallory", To: "alice-steem", Amount: "1.000 STEEM"}, "tx1"},
		{"wrong receiver", chain.Transfer{From: "bob-steem", To: "mallory", Amount: "1.000 STEEM"}, "tx1"},
		{"unknown transaction", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 STEEM"}, "missing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTipFixture(t, "alice-steem", "bob-steem")
			f.chain.addTransfers("tx1", tc.transfer)

			res := f.tip(tc.data, types.TipClaim{Currency: "steem", Amount: "1.000"})
			if res.Processed {
				t.Error("mismatched transfer processed")
			}
			expectClaims(t, res, constants.TipStatusTransferNotFound)

			if n := f.tipCount(); n != 0 {
				t.Errorf("got %d tips, want 0", n)
			}
		})
	}
}

func TestTipMultipleClaims(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	f.chain.addTransfers("tx1",
		chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 STEEM"},
		chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "3.000 SBD"},
	)

	res := f.tip("tx1",
		types.TipClaim{Currency: "steem", Amount: "1.000"},
		types.TipClaim{Currency: "doge", Amount: "5.000"},
		types.TipClaim{Currency: "sbd", Amount: "3.000"},
		types.TipClaim{Currency: "sbd", Amount: "9.000"},
	)
	expectClaims(t, res,
		constants.TipStatusRecorded,
		constants.TipStatusUnsupportedCurrency,
		constants.TipStatusRecorded,
		constants.TipStatusTransferNotFound,
	)
	// 最后一条到达写入步骤的是 sbd 3.000
	if !res.Processed {
		t.Error("processed should reflect the last recorded claim")
	}

	if n := f.tipCount(); n != 2 {
		t.Errorf("got %d tips, want 2", n)
	}
	if f.chain.calls != 1 {
		t.Errorf("chain queried %d times, want 1", f.chain.calls)
	}
}

func TestTipTargetMissing(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	token := f.token(f.tipper)
	claims := []types.TipClaim{{Currency: "steem", Amount: "1.000"}}

	rec := f.do(http.MethodPost, "/v1/tip", &types.TipInput{Obj: "bounties", ID: f.article.ID, Tips: claims, Data: "tx1"}, token)
	expectError(t, rec, http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)

	rec = f.do(http.MethodPost, "/v1/tip", &types.TipInput{Obj: constants.ObjRefArticles, ID: 9999, Tips: claims, Data: "tx1"}, token)
	expectError(t, rec, http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
}

func TestTipChainUnavailable(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	f.chain.err = errors.New("connection refused")

	rec := f.do(http.MethodPost, "/v1/tip", &types.TipInput{
		Obj:  constants.ObjRefArticles,
		ID:   f.article.ID,
		Tips: []types.TipClaim{{Currency: "steem", Amount: "1.000"}},
		Data: "tx1",
	}, f.token(f.tipper))
	expectError(t, rec, http.StatusBadGateway, constants.MsgChainUnavailable)

	if n := f.tipCount(); n != 0 {
		t.Errorf("got %d tips, want 0", n)
	}
}

func TestTipRequiresUser(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")

	rec := f.do(http.MethodPost, "/v1/tip", &types.TipInput{
		Obj:  constants.ObjRefArticles,
		ID:   f.article.ID,
		Tips: []types.TipClaim{{Currency: "steem", Amount: "1.000"}},
		Data: "tx1",
	}, "")
	expectError(t, rec, http.StatusUnauthorized, constants.MsgNotAllowed)

	rec = f.do(http.MethodPost, "/v1/tip", &types.TipInput{Obj: constants.ObjRefArticles, ID: f.article.ID, Data: "tx1"}, f.token(f.tipper))
	expectError(t, rec, http.StatusBadRequest, constants.MsgValidationError)
}

func TestTipAuthorInfo(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "")

	rec := f.do(http.MethodGet, fmt.Sprintf("/v1/tip/articles/%d/author", f.article.ID), nil, "")
	expectStatus(t, rec, http.StatusOK)
	info := decode[types.AuthorInfo](t, rec)
	if info.SteemUser == nil || *info.SteemUser != "alice-steem" || info.Username == nil || *info.Username != "alice" {
		t.Errorf("unexpected author info %+v", info)
	}

	other := f.createArticle(f.tipper, "Unlinked", "body")
	rec = f.do(http.MethodGet, fmt.Sprintf("/v1/tip/articles/%d/author", other.ID), nil, "")
	expectStatus(t, rec, http.StatusOK)
	if body := rec.Body.String(); body != "{\"steemUser\":null,\"username\":null}\n" {
		t.Errorf("unexpected body %q", body)
	}

	rec = f.do(http.MethodGet, "/v1/tip/articles/9999/author", nil, "")
	expectError(t, rec, http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
}

func TestTipOnDeletedAuthor(t *testing.T) {
	f := newTipFixture(t, "alice-steem", "bob-steem")
	f.chain.addTransfers("tx1", chain.Transfer{From: "bob-steem", To: "alice-steem", Amount: "1.000 STEEM"})
	expectStatus(t, f.do(http.MethodPost, "/v1/user/alice/delete", nil, f.token(f.author)), http.StatusOK)

	res := f.tip("tx1", types.TipClaim{Currency: "steem", Amount: "1.000"})
	if res.Processed {
		t.Error("tip processed for deleted author")
	}
	expectClaims(t, res, constants.TipStatusNoLinkedAddress)
	if n := f.tipCount(); n != 0 {
		t.Errorf("got %d tips, want 0", n)
	}

	rec := f.do(http.MethodGet, fmt.Sprintf("/v1/tip/articles/%d/author", f.article.ID), nil, "")
	expectError(t, rec, http.StatusUnprocessableEntity, constants.MsgDocumentDoesNotExist)
}
