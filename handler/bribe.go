package handler

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

const (
	MarketAura     = "aura"
	MarketBalancer = "balancer"
)

// HiddenHandBribe reports depositBribe calls against the Hidden Hand briber
// markets. The proposal hash is resolved against the live market so the row
// shows which pool the incentive lands on.
func HiddenHandBribe(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error) {
	if !tx.HasInputs() {
		return nil, nil
	}
	if tx.MethodName() != "depositBribe" {
		return nil, nil
	}
	auraBriber := env.Book.Extra(utils.ChainMainnet, "hidden_hand2", "aura_briber")
	balancerBriber := env.Book.Extra(utils.ChainMainnet, "hidden_hand2", "balancer_briber")

	var market string
	switch utils.NormalizeAddress(tx.To) {
	case utils.NormalizeAddress(auraBriber):
		market = MarketAura
	case utils.NormalizeAddress(balancerBriber):
		market = MarketBalancer
	default:
		logrus.Infof("cannot determine bribe market for tx %d in %s, to address is %s", txIndex, payload.FileName, tx.To)
		return nil, nil
	}

	token, err := env.Tokens.Token(utils.ChainMainnet, tx.Input("_token"))
	if err != nil {
		return nil, fmt.Errorf("get bribe token %s is err: %v", tx.Input("_token"), err)
	}
	rawAmount := tx.Input("_amount")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, fmt.Errorf("parse bribe amount %s is err: %v", rawAmount, err)
	}
	proposalHash := tx.Input("_proposal")
	periods := tx.Input("_periods")
	if periods == "" {
		periods = utils.SentinelNA
	}

	proposals, err := env.Proposals.Proposals(market)
	if err != nil {
		return nil, fmt.Errorf("get %s proposals is err: %v", market, err)
	}
	proposal, ok := proposals[strings.ToLower(proposalHash)]
	if !ok {
		row := model.ReportRow{Handler: HandlerBribe, TxIndex: txIndex}
		row.Add("function", "depositBribe").
			Add("chain", utils.ChainMainnet).
			Add("error", fmt.Sprintf("Can not find proposal %s on the %s incentive market.", proposalHash, market)).
			Add("bip", payload.BIPNumber(tx))
		return &row, nil
	}

	title := proposal.Title
	if title == "" {
		title = utils.SentinelNotFound
	}
	poolID := proposal.PoolID
	if poolID == "" {
		poolID = utils.SentinelNotFound
	}

	row := model.ReportRow{Handler: HandlerBribe, TxIndex: txIndex}
	row.Add("function", "depositBribe").
		Add("chain", utils.ChainMainnet).
		Add("title_and_poolId", fmt.Sprintf("%s \n%s", title, poolID)).
		Add("incentive_paid", fmt.Sprintf("%s %s(%s)", token.GetSymbol(), token.GetValueWithDecimals(amount), rawAmount)).
		Add("market_and_prophash", fmt.Sprintf("%s \n%s", market, proposalHash)).
		Add("periods", periods)
	return &row, nil
}
