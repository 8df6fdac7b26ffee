package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StoreBackendSheets   = "sheets"
	StoreBackendXlsx     = "xlsx"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Store             Store             `mapstructure:",squash"`
	Sheets            Sheets            `mapstructure:",squash"`
	Xlsx              Xlsx              `mapstructure:",squash"`
	Sources           Sources           `mapstructure:",squash"`
	Display           Display           `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	Cors              Cors              `mapstructure:",squash"`
	AvailabilityAudit AvailabilityAudit `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
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

type Store struct {
	Backend string `mapstructure:"store_backend"`
}

type Sheets struct {
	CredentialsFile string            `mapstructure:"sheets_credentials_file"`
	LookupByName    bool              `mapstructure:"sheets_lookup_by_name"`
	RawTableIDs     []string          `mapstructure:"sheets_table_ids"`
	TableIDs        map[string]string `mapstructure:"-"`
}

type Xlsx struct {
	Dir string `mapstructure:"xlsx_dir"`
}

// Sources nomeia as tabelas, abas e colunas lidas na conciliação
type Sources struct {
	ProductionTable   string `mapstructure:"production_table"`
	ProductionSection string `mapstructure:"production_section"`

	InventoryTable          string `mapstructure:"inventory_table"`
	InventorySection        string `mapstructure:"inventory_section"`
	InventoryMaterialColumn string `mapstructure:"inventory_material_column"`
	InventoryQuantityColumn string `mapstructure:"inventory_quantity_column"`

	OrdersTable           string   `mapstructure:"orders_table"`
	OrdersSection         string   `mapstructure:"orders_section"`
	OrdersProductColumn   string   `mapstructure:"orders_product_column"`
	OrdersWeightColumn    string   `mapstructure:"orders_weight_column"`
	OrdersStatusColumn    string   `mapstructure:"orders_status_column"`
	OrdersPendingStatuses []string `mapstructure:"orders_pending_statuses"`

	MappingSection       string `mapstructure:"mapping_section"`
	MappingProductColumn string `mapstructure:"mapping_product_column"`
	MappingCutColumn     string `mapstructure:"mapping_cut_column"`

	LedgerTable   string `mapstructure:"ledger_table"`
	LedgerSection string `mapstructure:"ledger_section"`
}

type Display struct {
	Locale string `mapstructure:"display_locale"`
}

type Auth struct {
	Secret string   `mapstructure:"auth_secret"`
	Users  []string `mapstructure:"auth_users"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type AvailabilityAudit struct {
	CronSchedule string `mapstructure:"availability_audit_cron"`
	Enabled      bool   `mapstructure:"availability_audit_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/desossa?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("STORE_BACKEND", StoreBackendSheets)
	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("SHEETS_LOOKUP_BY_NAME", true)
	viper.SetDefault("SHEETS_TABLE_IDS", "")
	viper.SetDefault("XLSX_DIR", "data")

	// Fontes da conciliação
	viper.SetDefault("PRODUCTION_TABLE", "Sistema_Desossa")
	viper.SetDefault("PRODUCTION_SECTION", "Rendimento")

	viper.SetDefault("INVENTORY_TABLE", "Estoque_Fisico")
	viper.SetDefault("INVENTORY_SECTION", "Estoque")
	viper.SetDefault("INVENTORY_MATERIAL_COLUMN", "material")
	viper.SetDefault("INVENTORY_QUANTITY_COLUMN", "quantidade_kg")

	viper.SetDefault("ORDERS_TABLE", "Pedidos_Pendentes")
	viper.SetDefault("ORDERS_SECTION", "Pedidos")
	viper.SetDefault("ORDERS_PRODUCT_COLUMN", "product")
	viper.SetDefault("ORDERS_WEIGHT_COLUMN", "weight")
	viper.SetDefault("ORDERS_STATUS_COLUMN", "status")
	viper.SetDefault("ORDERS_PENDING_STATUSES", "")

	viper.SetDefault("MAPPING_SECTION", "De_Para")
	viper.SetDefault("MAPPING_PRODUCT_COLUMN", "descricao_produto")
	viper.SetDefault("MAPPING_CUT_COLUMN", "corte")

	viper.SetDefault("LEDGER_TABLE", "Sistema_Desossa")
	viper.SetDefault("LEDGER_SECTION", "Rendimento")

	viper.SetDefault("DISPLAY_LOCALE", "pt-BR")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_USERS", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("AVAILABILITY_AUDIT_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("AVAILABILITY_AUDIT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

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

	config.Sheets.TableIDs, err = ParseTableIDs(config.Sheets.RawTableIDs)
	if err != nil {
		return nil, err
	}

	config.Sources.OrdersPendingStatuses = trimAll(config.Sources.OrdersPendingStatuses)
	config.Auth.Users = trimAll(config.Auth.Users)
	config.Cors.AllowedOrigins = trimAll(config.Cors.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseTableIDs converte a lista "nome=id" em mapa
func ParseTableIDs(entries []string) (map[string]string, error) {
	ids := make(map[string]string, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, id, ok := strings.Cut(entry, "=")
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("SHEETS_TABLE_IDS inválido: %q (esperado nome=id)", entry)
		}
		ids[name] = id
	}
	return ids, nil
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
