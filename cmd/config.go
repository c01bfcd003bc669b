package cmd

// Config carries every runtime setting of the fulfillment engine. Values come
// from the environment (optionally via .env); AmqpURL may be empty, which
// disables the audit feed publisher.
type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	StockServiceURL     string
	StockServiceTimeout string
	AmqpURL             string
}
