package config

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var Conf = config{}

type config struct {
	Chains      map[string]ChainConfig `mapstructure:"chains" yaml:"chains"`
	AddressBook AddressBookConfig      `mapstructure:"addressbook" yaml:"addressbook"`
	HiddenHand  HiddenHandConfig       `mapstructure:"hiddenhand" yaml:"hiddenhand"`
	Snapshot    SnapshotConfig         `mapstructure:"snapshot" yaml:"snapshot"`
	Bribes      BribesConfig           `mapstructure:"bribes" yaml:"bribes"`
	Report      ReportConfig           `mapstructure:"report" yaml:"report"`
	Postgresql  PostgresqlConfig       `mapstructure:"postgresql" yaml:"postgresql"`
	Redis       RedisConfig            `mapstructure:"redis" yaml:"redis"`
	HTTPServer  HTTPServerConfig       `mapstructure:"httpserver" yaml:"httpserver"`
	Notifier    NotifierConfig         `mapstructure:"notifier" yaml:"notifier"`
}

// ChainConfig describes one supported network. Chains without a provider URL
// are skipped at client setup; handlers hitting them fall back to sentinels.
type ChainConfig struct {
	ChainID     int64    `mapstructure:"chain_id" yaml:"chain_id"`
	ProviderURL string   `mapstructure:"provider_url" yaml:"provider_url"`
	ScanAPI     string   `mapstructure:"scan_api" yaml:"scan_api"`
	ScanAPIKeys []string `mapstructure:"scan_api_keys" yaml:"scan_api_keys"`
}

// AddressBookConfig points at the externally maintained address-book
// artifacts. Templates receive the chain name via %s.
type AddressBookConfig struct {
	BookURL          string `mapstructure:"book_url" yaml:"book_url"`
	ExtrasURL        string `mapstructure:"extras_url" yaml:"extras_url"`
	PermissionsURL   string `mapstructure:"permissions_url" yaml:"permissions_url"`
	RefreshCacheSecs int    `mapstructure:"refresh_cache_secs" yaml:"refresh_cache_secs"`
}

type HiddenHandConfig struct {
	APIURL string `mapstructure:"api_url" yaml:"api_url"`
}

type SnapshotConfig struct {
	GraphQLURL string `mapstructure:"graphql_url" yaml:"graphql_url"`
	AuraSpace  string `mapstructure:"aura_space" yaml:"aura_space"`
}

// BribesConfig carries the fixed addresses the bribe payload builder needs.
// Briber addresses default to the address-book extras when left empty.
type BribesConfig struct {
	SafeAddress    string `mapstructure:"safe_address" yaml:"safe_address"`
	TokenAddress   string `mapstructure:"token_address" yaml:"token_address"`
	BribeVault     string `mapstructure:"bribe_vault" yaml:"bribe_vault"`
	AuraBriber     string `mapstructure:"aura_briber" yaml:"aura_briber"`
	BalancerBriber string `mapstructure:"balancer_briber" yaml:"balancer_briber"`
	AuraLabelsURL  string `mapstructure:"aura_labels_url" yaml:"aura_labels_url"`
}

type ReportConfig struct {
	OutDir  string `mapstructure:"out_dir" yaml:"out_dir"`
	LogPath string `mapstructure:"log_path" yaml:"log_path"`
}

type PostgresqlConfig struct {
	User         string `mapstructure:"user" yaml:"user"`
	Password     string `mapstructure:"password" yaml:"password"`
	Database     string `mapstructure:"database" yaml:"database"`
	Host         string `mapstructure:"host" yaml:"host"`
	Port         int    `mapstructure:"port" yaml:"port"`
	LogMode      bool   `mapstructure:"log-mode" yaml:"log-mode"`
	MaxIdleConns int    `mapstructure:"max-idle-conns" yaml:"max-idle-conns"`
	MaxOpenConns int    `mapstructure:"max-open-conns" yaml:"max-open-conns"`
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr" yaml:"addr"`
	Password     string `mapstructure:"password" yaml:"password"`
	Database     int    `mapstructure:"database" yaml:"database"`
	MaxIdleConns int    `mapstructure:"max-idle-conns" yaml:"max-idle-conns"`
}

type HTTPServerConfig struct {
	Host           string `mapstructure:"host" yaml:"host"`
	Port           int    `mapstructure:"port" yaml:"port"`
	APIKey         string `mapstructure:"apikey" yaml:"apikey"`
	ClientMaxConns int    `mapstructure:"client_max_conns" yaml:"client_max_conns"`
}

type NotifierConfig struct {
	SlackWebHook string `mapstructure:"slack_webhook" yaml:"slack_webhook"`
	LarkWebHook  string `mapstructure:"lark_webhook" yaml:"lark_webhook"`
}

// SetupConfig loads the yaml config file and merges environment overrides.
// A .env file next to the working directory is honored for local secrets
// such as scan API keys.
func SetupConfig(configFile string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Infof("skip loading .env file: %v", err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}
	viper.SetEnvPrefix("PAYLOADEYE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("failed to read configuration file: %v", err))
	}
	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal configuration file %v", err))
	}
	setDefaults()

	logrus.Infof("read configuration file successfully")
}

func setDefaults() {
	if Conf.AddressBook.BookURL == "" {
		Conf.AddressBook.BookURL = "https://raw.githubusercontent.com/BalancerMaxis/bal_addresses/main/outputs/%s.json"
	}
	if Conf.AddressBook.ExtrasURL == "" {
		Conf.AddressBook.ExtrasURL = "https://raw.githubusercontent.com/BalancerMaxis/bal_addresses/main/extras/%s.json"
	}
	if Conf.AddressBook.PermissionsURL == "" {
		Conf.AddressBook.PermissionsURL = "https://raw.githubusercontent.com/BalancerMaxis/bal_addresses/main/outputs/permissions/active/%s.json"
	}
	if Conf.AddressBook.RefreshCacheSecs == 0 {
		Conf.AddressBook.RefreshCacheSecs = 3600
	}
	if Conf.HiddenHand.APIURL == "" {
		Conf.HiddenHand.APIURL = "https://api.hiddenhand.finance"
	}
	if Conf.Snapshot.GraphQLURL == "" {
		Conf.Snapshot.GraphQLURL = "https://hub.snapshot.org/graphql"
	}
	if Conf.Snapshot.AuraSpace == "" {
		Conf.Snapshot.AuraSpace = "gauges.aurafinance.eth"
	}
	if Conf.Bribes.AuraLabelsURL == "" {
		Conf.Bribes.AuraLabelsURL = "https://raw.githubusercontent.com/aurafinance/aura-contracts/main/tasks/snapshot/labels.json"
	}
	if Conf.HTTPServer.ClientMaxConns == 0 {
		Conf.HTTPServer.ClientMaxConns = 20
	}
}

// ScanAPIKey picks one of the configured explorer API keys for a chain, ""
// when none are configured. Rotating over the key pool spreads rate limits.
func ScanAPIKey(chain string) string {
	cc, ok := Conf.Chains[chain]
	if !ok || len(cc.ScanAPIKeys) == 0 {
		return ""
	}
	return cc.ScanAPIKeys[rand.Intn(len(cc.ScanAPIKeys))]
}
