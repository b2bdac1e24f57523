package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/safeops/payloadeye/client"
	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/utils"
)

type ScanBaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ScanContractResponse struct {
	ScanBaseResponse
	Result json.RawMessage `json:"result"`
}

type ScanContract struct {
	SourceCode   string `json:"SourceCode"`
	ABI          string `json:"ABI"`
	ContractName string `json:"ContractName"`
}

const abiNotVerified = "Contract source code not verified"

// ContractInfo is the decoded result of one explorer source lookup. Unverified
// contracts keep Verified false and a nil ABI; callers substitute sentinels
// instead of failing the run.
type ContractInfo struct {
	Chain    string
	Address  string
	Name     string
	Verified bool
	ABI      *abi.ABI
	RawABI   string
}

func (ci *ContractInfo) HasMethod(name string) bool {
	if ci.ABI == nil {
		return false
	}
	_, ok := ci.ABI.Methods[name]
	return ok
}

// MethodByData resolves the ABI method matching the calldata's 4-byte
// selector.
func (ci *ContractInfo) MethodByData(data string) (*abi.Method, error) {
	if ci.ABI == nil {
		return nil, fmt.Errorf("contract %s has no decoded abi", ci.Address)
	}
	raw := common.FromHex(data)
	if len(raw) < 4 {
		return nil, fmt.Errorf("calldata %s is shorter than a selector", data)
	}
	return ci.ABI.MethodById(raw[:4])
}

func scanSourceURL(chain, address string) string {
	scanAPI := utils.GetScanAPI(chain)
	if cc, ok := config.Conf.Chains[chain]; ok && cc.ScanAPI != "" {
		scanAPI = cc.ScanAPI
	}
	return fmt.Sprintf("%s?module=contract&action=%s&address=%s&apikey=%s",
		scanAPI, utils.SourceCodeAction, address, config.ScanAPIKey(chain))
}

// GetContractInfo fetches the verified source metadata for a contract from
// the chain's block explorer and parses its ABI.
func GetContractInfo(chain, address string) (*ContractInfo, error) {
	url := scanSourceURL(chain, address)
	body, err := retry.DoWithData(func() ([]byte, error) {
		resp, err := client.HTTPClient().Get(url)
		if err != nil {
			return nil, fmt.Errorf("get contract source code from scan api is err: %v", err)
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return nil, err
	}

	response := ScanContractResponse{}
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("json unmarshal from body %s is err: %v", string(body), err)
	}

	info := ContractInfo{Chain: chain, Address: address}
	if response.Status != "1" {
		// The proxy API reports unverified contracts as NOTOK with the
		// reason in the result string.
		if strings.Contains(string(response.Result), abiNotVerified) {
			return &info, nil
		}
		return nil, fmt.Errorf("get contract %s from scan is err: %s %s", address, response.Message, string(response.Result))
	}

	contracts := []ScanContract{}
	if err = json.Unmarshal(response.Result, &contracts); err != nil {
		return nil, fmt.Errorf("json unmarshal scan result %s is err: %v", string(response.Result), err)
	}
	if len(contracts) == 0 {
		return nil, fmt.Errorf("scan result for contract %s is empty", address)
	}
	contract := contracts[0]
	if contract.ABI == "" || contract.ABI == abiNotVerified {
		return &info, nil
	}

	parsed, err := abi.JSON(strings.NewReader(contract.ABI))
	if err != nil {
		return nil, fmt.Errorf("parse abi of contract %s is err: %v", address, err)
	}
	info.Name = contract.ContractName
	info.Verified = true
	info.ABI = &parsed
	info.RawABI = contract.ABI
	return &info, nil
}
