package model

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/client"
	"github.com/safeops/payloadeye/datastore"
	"github.com/safeops/payloadeye/utils"
)

type OpenChainResponse struct {
	OK     bool            `json:"ok"`
	Result OpenChainResult `json:"result"`
}

type OpenChainResult struct {
	Function map[string][]OpenChainSignature `json:"function"`
}

type OpenChainSignature struct {
	Name     string `json:"name"`
	Filtered bool   `json:"filtered"`
}

type Signature struct {
	ByteSign string `json:"byte_sign" gorm:"column:byte_sign"`
	TextSign string `json:"text_sign" gorm:"column:text_sign"`
}

func (s *Signature) GetTextSign() error {
	tableName := utils.ComposeTableName(datastore.SchemaPublic, datastore.TableSignatures)
	return datastore.DB().Table(tableName).Where("byte_sign = ?", s.ByteSign).Limit(1).Find(s).Error
}

func (s *Signature) Create() error {
	tableName := utils.ComposeTableName(datastore.SchemaPublic, datastore.TableSignatures)
	return datastore.DB().Table(tableName).Create(s).Error
}

func lookupOpenChain(byteSign string) (string, error) {
	or := OpenChainResponse{}
	retry := 3
	for {
		url := fmt.Sprintf("https://api.openchain.xyz/signature-database/v1/lookup?function=%s&filter=true", byteSign)
		resp, err := client.HTTPClient().Get(url)
		if err != nil {
			return "", fmt.Errorf("receive response from %s is err: %v", url, err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("read data from resp.Body is err: %v", err)
		}
		if err = json.Unmarshal(data, &or); err != nil {
			return "", fmt.Errorf("unmarshal data %s is err: %v", string(data), err)
		}
		if or.OK || retry == 0 {
			break
		}
		retry -= 1
	}
	if !or.OK {
		return "", fmt.Errorf("get signature %s from openchain retry 3 times is not ok", byteSign)
	}
	if value, ok := or.Result.Function[byteSign]; ok && len(value) > 0 {
		return value[0].Name, nil
	}
	return "", nil
}

// SignatureStore resolves 4-byte selectors to text signatures through an
// in-process cache, the optional postgresql signatures table, and the
// openchain signature database.
type SignatureStore struct {
	mu    sync.Mutex
	cache map[string]string
}

func NewSignatureStore() *SignatureStore {
	return &SignatureStore{cache: map[string]string{}}
}

// TextSignature returns the resolved signature, "" when even openchain does
// not know the selector.
func (ss *SignatureStore) TextSignature(byteSign string) (string, error) {
	ss.mu.Lock()
	cached, ok := ss.cache[byteSign]
	ss.mu.Unlock()
	if ok {
		return cached, nil
	}

	s := Signature{ByteSign: byteSign}
	if datastore.Enabled() {
		if err := s.GetTextSign(); err != nil {
			logrus.Errorf("get byte sign %s is err: %v", byteSign, err)
		} else if s.TextSign != "" {
			ss.put(byteSign, s.TextSign)
			return s.TextSign, nil
		}
	}

	textSign, err := lookupOpenChain(byteSign)
	if err != nil {
		return "", err
	}
	if textSign != "" && datastore.Enabled() {
		s.TextSign = textSign
		if err := s.Create(); err != nil {
			logrus.Errorf("insert signature %s to db is err: %v", byteSign, err)
		}
	}
	ss.put(byteSign, textSign)
	return textSign, nil
}

func (ss *SignatureStore) put(byteSign, textSign string) {
	ss.mu.Lock()
	ss.cache[byteSign] = textSign
	ss.mu.Unlock()
}
