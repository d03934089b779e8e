package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "CYPHERNODE"
	caCertFile = "cacert.pem"

	tlsPinned   = "pinned"
	tlsSystem   = "system"
	tlsInsecure = "insecure"
)

type Config struct {
	Host         string `mapstructure:"HOST" envDefault:"" envInfo:"Gatekeeper address (e.g., cyphernode.local:2009)"`
	ClientID     string `mapstructure:"CLIENT_ID" envDefault:"" envInfo:"API client id, selects the permission group (000 to 003)"`
	Secret       string `mapstructure:"SECRET" envDefault:"" envInfo:"API client secret used as the HS256 key"`
	TLSMode      string `mapstructure:"TLS_MODE" envDefault:"pinned" envInfo:"Gateway certificate check: pinned | system | insecure"`
	CACert       string `mapstructure:"CA_CERT" envDefault:"" envInfo:"Pinned gateway certificate (defaults to DATADIR/cacert.pem)"`
	ServerName   string `mapstructure:"SERVER_NAME" envDefault:"" envInfo:"Name checked against the gateway certificate"`
	Timeout      uint32 `mapstructure:"TIMEOUT" envDefault:"15" envInfo:"Per-call timeout in seconds"`
	Network      string `mapstructure:"NETWORK" envDefault:"" envInfo:"Enables local address/invoice checks: mainnet | testnet | signet | regtest"`
	Datadir      string `mapstructure:"DATADIR" envDefault:"" envInfo:"Directory holding cacert.pem (defaults to the OS app data dir)"`
	LogLevel     uint32 `mapstructure:"LOG_LEVEL" envDefault:"4" envInfo:"Log verbosity (higher = more verbose)"`
	CallbackPort uint32 `mapstructure:"CALLBACK_PORT" envDefault:"1111" envInfo:"Port of the watch callback receiver (cnctl listen)"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := setDefaultConfig(v); err != nil {
		return nil, fmt.Errorf("error setting default config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	if config.Datadir == "" {
		config.Datadir = appDatadir("cyphernode", false)
	}
	config.Datadir = cleanAndExpandPath(config.Datadir)
	if config.CACert == "" {
		config.CACert = filepath.Join(config.Datadir, caCertFile)
	}
	config.CACert = cleanAndExpandPath(config.CACert)

	return &config, nil
}

// ClientConfig turns the environment into the options of cyphernode.New.
func (c *Config) ClientConfig() (cyphernode.Config, error) {
	policy, err := c.tlsPolicy()
	if err != nil {
		return cyphernode.Config{}, err
	}

	network, err := networkParams(c.Network)
	if err != nil {
		return cyphernode.Config{}, err
	}

	return cyphernode.Config{
		Host:       c.Host,
		ClientID:   c.ClientID,
		Secret:     c.Secret,
		TLS:        policy,
		ServerName: c.ServerName,
		Timeout:    time.Duration(c.Timeout) * time.Second,
		Network:    network,
		Logger:     log.NewEntry(log.StandardLogger()),
	}, nil
}

func (c *Config) tlsPolicy() (cyphernode.TLSPolicy, error) {
	switch strings.ToLower(c.TLSMode) {
	case tlsPinned:
		cert, err := os.ReadFile(c.CACert)
		if err != nil {
			return cyphernode.TLSPolicy{}, fmt.Errorf("failed to read pinned certificate: %w", err)
		}
		return cyphernode.PinnedCert(cert), nil
	case tlsSystem:
		return cyphernode.SystemTrust(), nil
	case tlsInsecure:
		return cyphernode.InsecureSkipVerify(), nil
	default:
		return cyphernode.TLSPolicy{}, fmt.Errorf(
			"invalid TLS_MODE %q, must be one of %s, %s, %s", c.TLSMode, tlsPinned, tlsSystem, tlsInsecure,
		)
	}
}

func networkParams(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "":
		return nil, nil
	case "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

func setDefaultConfig(v *viper.Viper) error {
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := f.Tag.Get("mapstructure")
		if def := f.Tag.Get("envDefault"); def != "" {
			v.SetDefault(key, def)
		}
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("error binding env variable for key %s: %w", key, err)
		}
	}
	return nil
}

// appDatadir returns the OS specific application data directory for
// appName, or "." if none can be found.
func appDatadir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	appName = strings.TrimPrefix(appName, ".")
	appNameUpper := string(unicode.ToUpper(rune(appName[0]))) + appName[1:]
	appNameLower := string(unicode.ToLower(rune(appName[0]))) + appName[1:]

	var homeDir string
	usr, err := user.Current()
	if err == nil {
		homeDir = usr.HomeDir
	}
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if roaming || appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData != "" {
			return filepath.Join(appData, appNameUpper)
		}

	case "darwin":
		if homeDir != "" {
			return filepath.Join(homeDir, "Library", "Application Support", appNameUpper)
		}

	default:
		if homeDir != "" {
			return filepath.Join(homeDir, "."+appNameLower)
		}
	}

	return "."
}

func cleanAndExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~") {
		var homeDir string
		if u, err := user.Current(); err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// os.ExpandEnv only understands POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
