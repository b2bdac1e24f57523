package handler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

const (
	StyleMainnet            = "mainnet"
	StyleSingleRecipient    = "Single Recipient"
	StyleChildChainStreamer = "ChildChainStreamer"
	StyleL0                 = "L0 sidechain"
)

// extractPool resolves the pool behind a gauge. Sidechain gauges are followed
// through their root-gauge recipient onto the child chain, hopping once more
// when the recipient is a ChildChainStreamer. Mainnet gauges without a name()
// are single-recipient gauges pointing at a voting escrow. An unverified
// contract on any hop yields the sentinel pool instead of an error.
func extractPool(env *Env, chain, gaugeAddress string, gaugeInfo *model.ContractInfo) (*model.PoolInfo, string, error) {
	if chain != utils.ChainMainnet {
		pool, style, err := extractSidechainPool(env, chain, gaugeAddress)
		if err != nil {
			return nil, "", err
		}
		return pool, style, nil
	}

	if !gaugeInfo.HasMethod("name") {
		pool, err := extractSingleRecipientPool(env, gaugeAddress)
		if err != nil {
			return nil, "", err
		}
		return pool, StyleSingleRecipient, nil
	}

	lpToken, err := env.Chain.LPToken(utils.ChainMainnet, gaugeAddress)
	if err != nil {
		return nil, "", fmt.Errorf("get lp_token of gauge %s is err: %v", gaugeAddress, err)
	}
	pool, err := poolInfo(env, utils.ChainMainnet, lpToken)
	if err != nil {
		return nil, "", err
	}
	return pool, StyleMainnet, nil
}

func extractSidechainPool(env *Env, chain, gaugeAddress string) (*model.PoolInfo, string, error) {
	// The root gauge lives on mainnet; its recipient is the child chain gauge.
	recipient, err := env.Chain.GaugeRecipient(utils.ChainMainnet, gaugeAddress)
	if err != nil {
		return nil, "", fmt.Errorf("get recipient of root gauge %s is err: %v", gaugeAddress, err)
	}
	logrus.Infof("root gauge %s recipient: %s", gaugeAddress, recipient)

	style := ""
	recipientInfo, err := env.Inspector.Inspect(chain, recipient)
	if err != nil {
		return nil, "", err
	}
	if !recipientInfo.Verified {
		return model.UnverifiedPoolInfo(), StyleL0, nil
	}

	target := recipient
	if recipientInfo.HasMethod("reward_receiver") {
		style = StyleChildChainStreamer
		target, err = env.Chain.RewardReceiver(chain, recipient)
		if err != nil {
			return nil, "", fmt.Errorf("get reward_receiver of streamer %s is err: %v", recipient, err)
		}
		targetInfo, err := env.Inspector.Inspect(chain, target)
		if err != nil {
			return nil, "", err
		}
		if !targetInfo.Verified {
			return model.UnverifiedPoolInfo(), style, nil
		}
	}

	lpToken, err := env.Chain.LPToken(chain, target)
	if err != nil {
		return nil, "", fmt.Errorf("get lp_token of %s on %s is err: %v", target, chain, err)
	}
	pool, err := poolInfo(env, chain, lpToken)
	if err != nil {
		return nil, "", err
	}
	if style == "" {
		style = StyleL0
	}
	return pool, style, nil
}

func extractSingleRecipientPool(env *Env, gaugeAddress string) (*model.PoolInfo, error) {
	recipient, err := env.Chain.GaugeRecipient(utils.ChainMainnet, gaugeAddress)
	if err != nil {
		return nil, fmt.Errorf("get recipient of gauge %s is err: %v", gaugeAddress, err)
	}
	recipientInfo, err := env.Inspector.Inspect(utils.ChainMainnet, recipient)
	if err != nil {
		return nil, err
	}
	if !recipientInfo.Verified {
		return nil, fmt.Errorf("recipient %s of single recipient gauge %s is not verified", recipient, gaugeAddress)
	}
	if !recipientInfo.HasMethod("getVotingEscrow") {
		// Single recipient gauges are occasionally set up without an escrow;
		// the escrow is what ties them to a pool.
		logrus.Warnf("single recipient gauge %s points to %s with no escrow", gaugeAddress, recipient)
		return model.NoEscrowPoolInfo(), nil
	}
	escrow, err := env.Chain.VotingEscrow(utils.ChainMainnet, recipient)
	if err != nil {
		return nil, fmt.Errorf("get voting escrow of %s is err: %v", recipient, err)
	}
	token, err := env.Chain.EscrowToken(utils.ChainMainnet, escrow)
	if err != nil {
		return nil, fmt.Errorf("get token of escrow %s is err: %v", escrow, err)
	}
	return poolInfo(env, utils.ChainMainnet, token)
}

// poolInfo assembles the display fields for one pool. Optional calls are
// gated on the verified ABI so pools without a stable-math a-factor or rate
// providers degrade to sentinels instead of reverting.
func poolInfo(env *Env, chain, poolAddress string) (*model.PoolInfo, error) {
	info, err := env.Inspector.Inspect(chain, poolAddress)
	if err != nil {
		return nil, err
	}
	if !info.Verified {
		return model.UnverifiedPoolInfo(), nil
	}

	pool := model.PoolInfo{Address: utils.ChecksumAddress(poolAddress)}
	if pool.Name, err = env.Chain.PoolName(chain, poolAddress); err != nil {
		return nil, fmt.Errorf("get name of pool %s is err: %v", poolAddress, err)
	}
	if pool.Symbol, err = env.Chain.PoolSymbol(chain, poolAddress); err != nil {
		return nil, fmt.Errorf("get symbol of pool %s is err: %v", poolAddress, err)
	}

	pool.PoolID = utils.SentinelNA
	if info.HasMethod("getPoolId") {
		if pool.PoolID, err = env.Chain.PoolID(chain, poolAddress); err != nil {
			return nil, fmt.Errorf("get pool id of %s is err: %v", poolAddress, err)
		}
	}

	pool.Fee = utils.SentinelNotFound
	if info.HasMethod("getSwapFeePercentage") {
		fee, err := env.Chain.SwapFeePercentage(chain, poolAddress)
		if err != nil {
			return nil, fmt.Errorf("get swap fee of pool %s is err: %v", poolAddress, err)
		}
		pool.Fee = fee.String()
	}

	pool.AFactor = utils.SentinelNA
	if info.HasMethod("getAmplificationParameter") {
		aFactor, err := env.Chain.AmplificationParameter(chain, poolAddress)
		if err != nil {
			return nil, fmt.Errorf("get a-factor of pool %s is err: %v", poolAddress, err)
		}
		pool.AFactor = aFactor.String()
	}

	if info.HasMethod("getPoolId") && info.HasMethod("getVault") {
		tokens, err := env.Chain.PoolTokens(chain, poolAddress)
		if err != nil {
			return nil, fmt.Errorf("get tokens of pool %s is err: %v", poolAddress, err)
		}
		if pool.Tokens, err = prettifyTokens(env, chain, tokens); err != nil {
			return nil, err
		}
	}

	if info.HasMethod("getRateProviders") {
		providers, err := env.Chain.RateProviders(chain, poolAddress)
		if err != nil {
			return nil, fmt.Errorf("get rate providers of pool %s is err: %v", poolAddress, err)
		}
		pool.RateProviders = providers
	} else {
		pool.RateProviders = []string{utils.SentinelNA}
	}
	return &pool, nil
}

// prettifyTokens renders pool token addresses as "SYMBOL(address)".
func prettifyTokens(env *Env, chain string, addresses []string) ([]string, error) {
	pretty := make([]string, 0, len(addresses))
	for _, address := range addresses {
		token, err := env.Tokens.Token(chain, address)
		if err != nil {
			return nil, fmt.Errorf("get token %s on %s is err: %v", address, chain, err)
		}
		pretty = append(pretty, fmt.Sprintf("%s(%s)", token.GetSymbol(), utils.ChecksumAddress(address)))
	}
	return pretty, nil
}
