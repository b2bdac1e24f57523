package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/datastore"
	"github.com/safeops/payloadeye/utils"
)

type Token struct {
	ID        *int64    `json:"id" gorm:"column:id"`
	Address   string    `json:"address" gorm:"column:address"`
	Name      string    `json:"name" gorm:"column:name"`
	Symbol    string    `json:"symbol" gorm:"column:symbol"`
	Decimals  int64     `json:"decimals" gorm:"column:decimals"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (t *Token) IsExisted(chain, address string) bool {
	err := datastore.DB().
		Table(utils.ComposeTableName(chain, datastore.TableTokens)).
		Where("address = ?", utils.NormalizeAddress(address)).
		Find(t).Error
	if err != nil {
		logrus.Panic(err)
		return false
	}
	return t.ID != nil
}

func (t *Token) Create(chain string) error {
	return datastore.DB().
		Table(utils.ComposeTableName(chain, datastore.TableTokens)).
		Create(t).Error
}

func (t *Token) GetSymbol() string {
	if t.Symbol == "" {
		return t.Address
	}
	return t.Symbol
}

func (t *Token) GetValueWithDecimals(value decimal.Decimal) decimal.Decimal {
	return utils.ScaleAmount(value, t.Decimals)
}

// TokenFetcher reads token metadata on chain.
type TokenFetcher interface {
	TokenMeta(chain, address string) (name, symbol string, decimals int64, err error)
}

// TokenStore resolves token metadata through an in-process cache, the
// optional postgresql tokens table, and finally the chain itself. One store
// lives for the whole run.
type TokenStore struct {
	mu      sync.RWMutex
	cache   map[string]*Token
	fetcher TokenFetcher
}

func NewTokenStore(fetcher TokenFetcher) *TokenStore {
	return &TokenStore{cache: map[string]*Token{}, fetcher: fetcher}
}

func (ts *TokenStore) Token(chain, address string) (*Token, error) {
	key := fmt.Sprintf("%s:%s", chain, utils.NormalizeAddress(address))
	ts.mu.RLock()
	cached, ok := ts.cache[key]
	ts.mu.RUnlock()
	if ok {
		return cached, nil
	}

	token := &Token{}
	if datastore.Enabled() && token.IsExisted(chain, address) {
		ts.put(key, token)
		return token, nil
	}

	name, symbol, decimals, err := ts.fetcher.TokenMeta(chain, address)
	if err != nil {
		return nil, err
	}
	token = &Token{
		Address:  utils.NormalizeAddress(address),
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
	}
	if datastore.Enabled() {
		if err := token.Create(chain); err != nil {
			logrus.Errorf("create token %s to db is err: %v", address, err)
		}
	}
	ts.put(key, token)
	return token, nil
}

func (ts *TokenStore) put(key string, token *Token) {
	ts.mu.Lock()
	ts.cache[key] = token
	ts.mu.Unlock()
}
