package postgres

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// imageList is a Postgres text[] column. Other dialects store the array
// literal in a plain text column.
type imageList pq.StringArray

func (imageList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l imageList) Value() (driver.Value, error) {
	if l == nil {
		l = imageList{}
	}
	return pq.StringArray(l).Value()
}

func (l *imageList) Scan(src interface{}) error {
	return (*pq.StringArray)(l).Scan(src)
}

type CategoryModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Title     string `gorm:"size:255;not null"`
	TitleAm   string `gorm:"size:255"`
	TitleRu   string `gorm:"size:255"`
	Slug      string `gorm:"uniqueIndex;size:255;not null"`
	Image     string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

type SubcategoryModel struct {
	ID         string         `gorm:"primaryKey;size:36"`
	Title      string         `gorm:"size:255;not null"`
	TitleAm    string         `gorm:"size:255"`
	TitleRu    string         `gorm:"size:255"`
	CategoryID string         `gorm:"index;size:36;not null"`
	Category   *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Image      string         `gorm:"size:500"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SubcategoryModel) TableName() string {
	return "subcategories"
}

// ProductModel is also the stock ledger. Listing indexes follow the
// category-scoped query: category, then priority and recency.
type ProductModel struct {
	ID            string            `gorm:"primaryKey;size:36"`
	Title         string            `gorm:"size:255;not null"`
	TitleAm       string            `gorm:"size:255"`
	TitleRu       string            `gorm:"size:255"`
	Description   string            `gorm:"type:text"`
	DescriptionAm string            `gorm:"type:text"`
	DescriptionRu string            `gorm:"type:text"`
	Price         decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Stock         int               `gorm:"not null;default:0;check:stock >= 0"`
	CategoryID    string            `gorm:"index:idx_products_listing,priority:1;size:36;not null"`
	Category      *CategoryModel    `gorm:"foreignKey:CategoryID"`
	SubcategoryID *string           `gorm:"index;size:36"`
	Subcategory   *SubcategoryModel `gorm:"foreignKey:SubcategoryID;constraint:OnDelete:SET NULL"`
	ImageURLs     imageList         `gorm:"column:image_urls"`
	IsFeatured    bool              `gorm:"not null;default:false"`
	IsBestSeller  bool              `gorm:"not null;default:false"`
	IsBestSelect  bool              `gorm:"not null;default:false"`
	Disabled      bool              `gorm:"not null;default:false"`
	Priority      int               `gorm:"index:idx_products_listing,priority:2;not null;default:0"`
	CreatedAt     time.Time         `gorm:"index:idx_products_listing,priority:3"`
	UpdatedAt     time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

type OrderModel struct {
	ID              uint             `gorm:"primaryKey;autoIncrement"`
	CustomerName    string           `gorm:"size:255"`
	CustomerSurname string           `gorm:"size:255"`
	CustomerAddress string           `gorm:"size:500"`
	CustomerPhone   string           `gorm:"size:50"`
	CustomerEmail   string           `gorm:"size:255"`
	PaymentMethod   string           `gorm:"size:32;not null;default:cash_on_delivery"`
	TotalPrice      decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Status          string           `gorm:"index;size:16;not null;default:pending"`
	UserID          *string          `gorm:"index;size:36"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `gorm:"index"`
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel snapshots the product name and price at order time.
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID string          `gorm:"index;size:36;not null"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

type UserModel struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Email        string  `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash *string `gorm:"size:255"`
	FirstName    string  `gorm:"size:100"`
	LastName     string  `gorm:"size:100"`
	Phone        string  `gorm:"size:32"`
	IsVerified   bool    `gorm:"not null;default:false"`
	GoogleID     *string `gorm:"uniqueIndex;size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

type VerificationCodeModel struct {
	ID        string     `gorm:"primaryKey;size:36"`
	UserID    string     `gorm:"index;size:36;not null"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Code      string     `gorm:"size:6;not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	CreatedAt time.Time
}

func (VerificationCodeModel) TableName() string {
	return "verification_codes"
}

type AdminModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:admin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminModel) TableName() string {
	return "admins"
}

type BannerModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Image     string `gorm:"size:500;not null"`
	URL       string `gorm:"column:url;size:500"`
	Text      string `gorm:"type:text"`
	TextAm    string `gorm:"type:text"`
	TextRu    string `gorm:"type:text"`
	IsActive  bool   `gorm:"index;not null"`
	Priority  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BannerModel) TableName() string {
	return "banners"
}
