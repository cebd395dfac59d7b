//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// DeliveryMode selects how inbound updates reach the bot
// ENUM(polling,webhook)
type DeliveryMode string
