package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/datastore"
	"github.com/safeops/payloadeye/utils"
)

const contractCacheTTL = 24 * time.Hour

type cachedContract struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	ABI      string `json:"abi"`
}

// ContractStore answers explorer lookups through an in-process cache and an
// optional redis cache. Gauge payloads repeat the same root gauges across
// files, so one fetch per address per day is plenty.
type ContractStore struct {
	mu    sync.Mutex
	cache map[string]*ContractInfo
}

func NewContractStore() *ContractStore {
	return &ContractStore{cache: map[string]*ContractInfo{}}
}

func contractCacheKey(chain, address string) string {
	return fmt.Sprintf("scan:%s:%s", chain, utils.NormalizeAddress(address))
}

func (cs *ContractStore) Inspect(chain, address string) (*ContractInfo, error) {
	key := contractCacheKey(chain, address)
	cs.mu.Lock()
	cached, ok := cs.cache[key]
	cs.mu.Unlock()
	if ok {
		return cached, nil
	}

	if datastore.RedisEnabled() {
		if info := loadCachedContract(key, chain, address); info != nil {
			cs.put(key, info)
			return info, nil
		}
	}

	info, err := GetContractInfo(chain, address)
	if err != nil {
		return nil, err
	}
	if datastore.RedisEnabled() {
		storeCachedContract(key, info)
	}
	cs.put(key, info)
	return info, nil
}

func (cs *ContractStore) put(key string, info *ContractInfo) {
	cs.mu.Lock()
	cs.cache[key] = info
	cs.mu.Unlock()
}

func loadCachedContract(key, chain, address string) *ContractInfo {
	data, err := datastore.Redis().Get(context.Background(), key).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.Errorf("get contract %s from redis is err: %v", key, err)
		}
		return nil
	}
	cached := cachedContract{}
	if err = json.Unmarshal([]byte(data), &cached); err != nil {
		logrus.Errorf("unmarshal cached contract %s is err: %v", key, err)
		return nil
	}
	info := ContractInfo{
		Chain:    chain,
		Address:  address,
		Name:     cached.Name,
		Verified: cached.Verified,
		RawABI:   cached.ABI,
	}
	if cached.Verified && cached.ABI != "" {
		parsed, err := abi.JSON(strings.NewReader(cached.ABI))
		if err != nil {
			logrus.Errorf("parse cached abi for %s is err: %v", key, err)
			return nil
		}
		info.ABI = &parsed
	}
	return &info
}

func storeCachedContract(key string, info *ContractInfo) {
	data, err := json.Marshal(cachedContract{
		Name:     info.Name,
		Verified: info.Verified,
		ABI:      info.RawABI,
	})
	if err != nil {
		logrus.Errorf("marshal cached contract %s is err: %v", key, err)
		return
	}
	if err = datastore.Redis().Set(context.Background(), key, data, contractCacheTTL).Err(); err != nil {
		logrus.Errorf("set contract %s to redis is err: %v", key, err)
	}
}
