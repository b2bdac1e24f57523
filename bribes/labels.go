package bribes

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/safeops/payloadeye/client"
	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/utils"
)

// auraLabel is one entry of the aura-contracts snapshot label artifact.
type auraLabel struct {
	Gauge string `json:"gauge"`
	Label string `json:"label"`
}

// GaugeLabels fetches the gauge→snapshot-label map aura votes are titled
// with, keyed by checksummed gauge address.
func GaugeLabels() (map[string]string, error) {
	url := config.Conf.Bribes.AuraLabelsURL
	body, err := retry.DoWithData(func() ([]byte, error) {
		resp, err := client.HTTPClient().Get(url)
		if err != nil {
			return nil, fmt.Errorf("get aura labels %s is err: %v", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("get aura labels %s status is %d", url, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return nil, err
	}

	entries := []auraLabel{}
	if err = json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal aura labels is err: %v", err)
	}
	labels := make(map[string]string, len(entries))
	for _, entry := range entries {
		labels[utils.ChecksumAddress(entry.Gauge)] = entry.Label
	}
	return labels, nil
}
