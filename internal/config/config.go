package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	StatusSweep  StatusSweep  `mapstructure:",squash"`
	TotalsSweep  TotalsSweep  `mapstructure:",squash"`
	BudgetReset  BudgetReset  `mapstructure:",squash"`
	BudgetAlerts BudgetAlerts `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	// Timezone define a fronteira de dia/mês dos orçamentos
	Timezone string `mapstructure:"budget_timezone"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type StatusSweep struct {
	CronSchedule string `mapstructure:"status_sweep_cron"`
	Enabled      bool   `mapstructure:"status_sweep_enabled"`
}

type TotalsSweep struct {
	CronSchedule string `mapstructure:"totals_sweep_cron"`
	Enabled      bool   `mapstructure:"totals_sweep_enabled"`
}

type BudgetReset struct {
	DailyCronSchedule   string `mapstructure:"daily_reset_cron"`
	MonthlyCronSchedule string `mapstructure:"monthly_reset_cron"`
	Enabled             bool   `mapstructure:"budget_reset_enabled"`
}

type BudgetAlerts struct {
	CronSchedule string  `mapstructure:"budget_alerts_cron"`
	Threshold    float64 `mapstructure:"budget_alerts_threshold"`
	Enabled      bool    `mapstructure:"budget_alerts_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget_planner")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Varredura de status a cada 5 minutos
	viper.SetDefault("STATUS_SWEEP_CRON", "*/5 * * * *")
	viper.SetDefault("STATUS_SWEEP_ENABLED", true)

	// Recálculo de totais a cada 10 minutos
	viper.SetDefault("TOTALS_SWEEP_CRON", "*/10 * * * *")
	viper.SetDefault("TOTALS_SWEEP_ENABLED", true)

	// Reset diário à meia-noite e mensal no dia 1 à meia-noite
	viper.SetDefault("DAILY_RESET_CRON", "0 0 * * *")
	viper.SetDefault("MONTHLY_RESET_CRON", "0 0 1 * *")
	viper.SetDefault("BUDGET_RESET_ENABLED", true)

	// Varredura de alertas a cada 15 minutos, avisando a partir de 90% do teto
	viper.SetDefault("BUDGET_ALERTS_CRON", "*/15 * * * *")
	viper.SetDefault("BUDGET_ALERTS_THRESHOLD", 0.9)
	viper.SetDefault("BUDGET_ALERTS_ENABLED", true)

	viper.SetDefault("BUDGET_TIMEZONE", "UTC")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Location resolve o fuso horário configurado para as fronteiras de orçamento.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
