// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config 汇总了两个服务进程共享的全部配置。
// 来源优先级: 环境变量 CONFIG_FILE 指向的 YAML 文件，缺省值兜底。
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	} `yaml:"app"`

	Infra struct {
		MySQL struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Database string `yaml:"database"`
		} `yaml:"mysql"`

		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`

		Kafka struct {
			Brokers       []string `yaml:"brokers"`
			RealtimeTopic string   `yaml:"realtimeTopic"`
			ConsumerGroup string   `yaml:"consumerGroup"`
		} `yaml:"kafka"`

		Zookeeper struct {
			Servers []string `yaml:"servers"`
		} `yaml:"zookeeper"`

		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`

		Nacos struct {
			Enabled     bool   `yaml:"enabled"`
			ServerAddrs string `yaml:"serverAddrs"`
			Namespace   string `yaml:"namespace"`
			Group       string `yaml:"group"`
		} `yaml:"nacos"`
	} `yaml:"infra"`
}

var (
	currentConfig Config
	configOnce    sync.Once
)

// Init 加载配置，进程内只执行一次。
func Init() {
	configOnce.Do(func() {
		currentConfig = defaultConfig()

		path := getEnv("CONFIG_FILE", "config.yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			// 没有配置文件时用缺省值起本地开发环境
			return
		}
		if err := yaml.Unmarshal(data, &currentConfig); err != nil {
			panic("invalid config file " + path + ": " + err.Error())
		}
	})
}

// GetCurrentConfig 返回进程配置。必须先调用 Init。
func GetCurrentConfig() Config {
	return currentConfig
}

func defaultConfig() Config {
	var cfg Config
	cfg.Infra.MySQL.Host = getEnv("MYSQL_HOST", "localhost")
	cfg.Infra.MySQL.Port = 3306
	cfg.Infra.MySQL.User = getEnv("MYSQL_USER", "root")
	cfg.Infra.MySQL.Password = getEnv("MYSQL_PASSWORD", "")
	cfg.Infra.MySQL.Database = getEnv("MYSQL_DATABASE", "tably")
	cfg.Infra.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Infra.Kafka.Brokers = []string{getEnv("KAFKA_BROKER", "localhost:9092")}
	cfg.Infra.Kafka.RealtimeTopic = "realtime-events"
	cfg.Infra.Kafka.ConsumerGroup = "realtime-gateway"
	cfg.Infra.Zookeeper.Servers = []string{getEnv("ZK_SERVER", "localhost:2181")}
	cfg.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", "")
	cfg.Infra.Nacos.ServerAddrs = getEnv("NACOS_SERVER_ADDRS", "localhost:8848")
	cfg.Infra.Nacos.Group = getEnv("NACOS_GROUP", "DEFAULT_GROUP")
	return cfg
}

// getEnv 从环境变量中读取配置，带缺省值。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
