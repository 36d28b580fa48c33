package upstream

// Wire types for the platform API. Field names mirror the API's JSON
// schemas. Monetary amounts travel as decimal strings and are never parsed
// here; the backoffice displays them, it does not do arithmetic on them.

type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

type RestaurantCreate struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// RestaurantUpdate is a partial update: nil fields are left untouched by
// the platform. Manager and staff assignments ride on the same endpoint but
// are gated by a stricter capability than the core fields.
type RestaurantUpdate struct {
	Name           *string  `json:"name,omitempty"`
	Slug           *string  `json:"slug,omitempty"`
	Description    *string  `json:"description,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
	ManagerUserIDs []string `json:"manager_user_ids,omitempty"`
	StaffUserIDs   []string `json:"staff_user_ids,omitempty"`
}

type MenuCategory struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}

type MenuCategoryCreate struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type MenuCategoryUpdate struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type OptionGroup struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	MinSelect    int     `json:"min_select"`
	MaxSelect    int     `json:"max_select"`
	IsActive     bool    `json:"is_active"`
}

type OptionGroupCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	MinSelect   *int    `json:"min_select,omitempty"`
	MaxSelect   *int    `json:"max_select,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type OptionGroupUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	MinSelect   *int    `json:"min_select,omitempty"`
	MaxSelect   *int    `json:"max_select,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type OptionItem struct {
	ID         string `json:"id"`
	GroupID    string `json:"group_id"`
	Name       string `json:"name"`
	PriceExtra string `json:"price_extra"`
	IsActive   bool   `json:"is_active"`
}

type OptionItemCreate struct {
	Name       string  `json:"name"`
	PriceExtra *string `json:"price_extra,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type OptionItemUpdate struct {
	Name       *string `json:"name,omitempty"`
	PriceExtra *string `json:"price_extra,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type OptionGroupWithItems struct {
	OptionGroup
	Options []OptionItem `json:"options"`
}

type MenuItem struct {
	ID             string      `json:"id"`
	RestaurantID   string      `json:"restaurant_id"`
	CategoryID     *string     `json:"category_id,omitempty"`
	Label          string      `json:"label"`
	Description    *string     `json:"description,omitempty"`
	Price          string      `json:"price"`
	ImageURL       *string     `json:"image_url,omitempty"`
	IsActive       bool        `json:"is_active"`
	DisplayOrder   int         `json:"display_order"`
	Tags           []string    `json:"tags,omitempty"`
	Ingredients    interface{} `json:"ingredients,omitempty"`
	OptionGroupIDs []string    `json:"option_group_ids,omitempty"`
}

type MenuItemCreate struct {
	Label          string      `json:"label"`
	Description    *string     `json:"description,omitempty"`
	Price          string      `json:"price"`
	ImageURL       *string     `json:"image_url,omitempty"`
	IsActive       *bool       `json:"is_active,omitempty"`
	DisplayOrder   *int        `json:"display_order,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Ingredients    interface{} `json:"ingredients,omitempty"`
	CategoryID     *string     `json:"category_id,omitempty"`
	OptionGroupIDs []string    `json:"option_group_ids,omitempty"`
}

type MenuItemUpdate struct {
	Label          *string     `json:"label,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Price          *string     `json:"price,omitempty"`
	ImageURL       *string     `json:"image_url,omitempty"`
	IsActive       *bool       `json:"is_active,omitempty"`
	DisplayOrder   *int        `json:"display_order,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Ingredients    interface{} `json:"ingredients,omitempty"`
	CategoryID     *string     `json:"category_id,omitempty"`
	OptionGroupIDs []string    `json:"option_group_ids,omitempty"`
}

type InventoryItem struct {
	ID           string           `json:"id"`
	RestaurantID string           `json:"restaurant_id"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	Levels       []InventoryLevel `json:"levels,omitempty"`
}

type InventoryItemCreate struct {
	Name string  `json:"name"`
	Unit *string `json:"unit,omitempty"`
}

type InventoryLevel struct {
	ID              string  `json:"id"`
	InventoryItemID string  `json:"inventory_item_id"`
	Quantity        float64 `json:"quantity"`
	InStock         bool    `json:"in_stock"`
}

type InventoryLevelUpdate struct {
	Quantity float64 `json:"quantity"`
	InStock  bool    `json:"in_stock"`
}

type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
}

type OrderItem struct {
	ID         string      `json:"id"`
	MenuItemID string      `json:"menu_item_id"`
	Quantity   int         `json:"quantity"`
	UnitPrice  string      `json:"unit_price"`
	Options    interface{} `json:"options,omitempty"`
}

type OrderCreate struct {
	Items []OrderLine `json:"items"`
}

type OrderLine struct {
	MenuItemID string      `json:"menu_item_id"`
	Quantity   int         `json:"quantity"`
	Options    interface{} `json:"options,omitempty"`
}

// DirectoryUser is a Keycloak directory entry as the platform API relays it.
type DirectoryUser struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Enabled   bool    `json:"enabled"`
}
