package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type catalog struct {
	// Source is the fixed external catalog resource,
	// an HTTP(S) URL or a local file path.
	Source string `mapstructure:"source"`
}

type cart struct {
	DBPath string `mapstructure:"db_path"`
}

type shop struct {
	Name          string `mapstructure:"name"`
	WhatsAppPhone string `mapstructure:"whatsapp_phone"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Catalog        catalog    `mapstructure:"catalog"`
	Cart           cart       `mapstructure:"cart"`
	Shop           shop       `mapstructure:"shop"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Catalog:
	Source=%q

	Cart:
	DBPath=%q

	Shop:
	Name=%q
	WhatsAppPhone=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Catalog.Source,
		c.Cart.DBPath,
		c.Shop.Name,
		c.Shop.WhatsAppPhone,
	)
}
