//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Screen is one of the two views a menu message can show
// ENUM(main_menu,individual_list)
type Screen string
