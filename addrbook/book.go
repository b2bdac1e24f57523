package addrbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/client"
	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/datastore"
	"github.com/safeops/payloadeye/utils"
)

// Book holds the address-book artifacts for one chain: the flat name→address
// map, its reverse, and the extras sections with well-known protocol
// addresses. Artifacts are maintained externally and fetched per run.
type Book struct {
	Chain   string
	flat    map[string]string
	reverse map[string]string
	extras  map[string]map[string]any
}

// NameOf returns the book name registered for an address, "" when unknown.
func (b *Book) NameOf(address string) string {
	return b.reverse[utils.NormalizeAddress(address)]
}

// AddressOf returns the address registered under an exact book name.
func (b *Book) AddressOf(name string) string {
	return b.flat[name]
}

// SearchUnique finds the single book entry whose name contains substr. Zero
// or multiple matches are errors, mirroring how deployment names are used as
// unique keys.
func (b *Book) SearchUnique(substr string) (string, error) {
	matches := []string{}
	for name := range b.flat {
		if strings.Contains(name, substr) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no address book entry matches %s on %s", substr, b.Chain)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%d address book entries match %s on %s", len(matches), substr, b.Chain)
	}
	return b.flat[matches[0]], nil
}

// Extra returns one extras address, "" when the section or key is absent.
func (b *Book) Extra(section, key string) string {
	values, ok := b.extras[section]
	if !ok {
		return ""
	}
	value, ok := values[key]
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}

func loadBook(chain string) (*Book, error) {
	book := Book{
		Chain:   chain,
		flat:    map[string]string{},
		reverse: map[string]string{},
		extras:  map[string]map[string]any{},
	}

	bookURL := fmt.Sprintf(config.Conf.AddressBook.BookURL, chain)
	if err := fetchJSON(bookURL, &book.flat); err != nil {
		return nil, err
	}
	for name, address := range book.flat {
		book.reverse[utils.NormalizeAddress(address)] = name
	}

	if config.Conf.AddressBook.ExtrasURL != "" {
		extrasURL := fmt.Sprintf(config.Conf.AddressBook.ExtrasURL, chain)
		if err := fetchJSON(extrasURL, &book.extras); err != nil {
			// Extras are optional per chain, some networks have none.
			logrus.Infof("no extras for chain %s: %v", chain, err)
		}
	}
	logrus.Infof("loaded address book for chain %s with %d entries", chain, len(book.flat))
	return &book, nil
}

// fetchJSON downloads one artifact, going through redis first when a cache is
// configured.
func fetchJSON(url string, out any) error {
	cacheTTL := time.Duration(config.Conf.AddressBook.RefreshCacheSecs) * time.Second
	cacheKey := fmt.Sprintf("addrbook:%s", url)
	if datastore.RedisEnabled() && cacheTTL > 0 {
		data, err := datastore.Redis().Get(context.Background(), cacheKey).Result()
		if err == nil {
			return json.Unmarshal([]byte(data), out)
		}
	}

	body, err := retry.DoWithData(func() ([]byte, error) {
		resp, err := client.HTTPClient().Get(url)
		if err != nil {
			return nil, fmt.Errorf("get address book artifact %s is err: %v", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("get address book artifact %s status is %d", url, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal artifact %s is err: %v", url, err)
	}
	if datastore.RedisEnabled() && cacheTTL > 0 {
		if err := datastore.Redis().Set(context.Background(), cacheKey, body, cacheTTL).Err(); err != nil {
			logrus.Errorf("cache artifact %s to redis is err: %v", url, err)
		}
	}
	return nil
}

// Registry resolves per-chain books lazily and keeps them for the run.
type Registry struct {
	mu    sync.Mutex
	books map[string]*Book
}

func NewRegistry() *Registry {
	return &Registry{books: map[string]*Book{}}
}

func (r *Registry) book(chain string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if book, ok := r.books[chain]; ok {
		return book, nil
	}
	book, err := loadBook(chain)
	if err != nil {
		return nil, err
	}
	r.books[chain] = book
	return book, nil
}

func (r *Registry) NameOf(chain, address string) string {
	book, err := r.book(chain)
	if err != nil {
		logrus.Errorf("load address book for chain %s is err: %v", chain, err)
		return ""
	}
	return book.NameOf(address)
}

func (r *Registry) AddressOf(chain, name string) string {
	book, err := r.book(chain)
	if err != nil {
		logrus.Errorf("load address book for chain %s is err: %v", chain, err)
		return ""
	}
	return book.AddressOf(name)
}

func (r *Registry) SearchUnique(chain, substr string) (string, error) {
	book, err := r.book(chain)
	if err != nil {
		return "", err
	}
	return book.SearchUnique(substr)
}

func (r *Registry) Extra(chain, section, key string) string {
	book, err := r.book(chain)
	if err != nil {
		logrus.Errorf("load address book for chain %s is err: %v", chain, err)
		return ""
	}
	return book.Extra(section, key)
}
