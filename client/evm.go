package client

import (
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/config"
)

type multiEvmClient struct {
	clients map[string]*ethclient.Client
}

var multiEvm multiEvmClient
var evmOnce sync.Once

func (mec *multiEvmClient) initMultiEvmClient() {
	mec.clients = map[string]*ethclient.Client{}
	for chain, chainCfg := range config.Conf.Chains {
		if chainCfg.ProviderURL == "" {
			continue
		}
		client, err := ethclient.Dial(chainCfg.ProviderURL)
		if err != nil {
			logrus.Panicf("dial provider for chain %s is err: %v", chain, err)
		}
		mec.clients[chain] = client
	}
}

// MultiEvmClient returns one ethclient per configured chain, dialed lazily on
// first use and shared for the rest of the process.
func MultiEvmClient() map[string]*ethclient.Client {
	evmOnce.Do(func() {
		multiEvm.initMultiEvmClient()
	})
	return multiEvm.clients
}

// EvmClient returns the client for a single chain, or nil when the chain has
// no provider configured.
func EvmClient(chain string) *ethclient.Client {
	return MultiEvmClient()[chain]
}
