package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"diet-planner/internal/core/recommendation"
	"diet-planner/internal/pkg/common"

	"github.com/go-playground/validator/v10"
)

//go:embed data/indian_foods.json
var embeddedCatalog []byte

var regionTagPattern = regexp.MustCompile(`^[a-z]+(_[a-z]+)*$`)

// Catalog 唯讀的食物目錄
type Catalog struct {
	items []recommendation.FoodItem
	index map[string]int
}

// Parse 解析並驗證 JSON 格式的目錄
func Parse(data []byte) (*Catalog, error) {
	var items []recommendation.FoodItem
	if err := common.ParseJSONBytesStrict(data, &items); err != nil {
		return nil, common.ErrInvalidCatalog.WithErr(err)
	}
	return New(items)
}

// Default 內建目錄
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// New 以食物清單建立目錄，每筆資料都會經過驗證
func New(items []recommendation.FoodItem) (*Catalog, error) {
	if len(items) == 0 {
		return nil, common.ErrInvalidCatalog.WithErr(fmt.Errorf("catalog is empty"))
	}

	validate := newValidator()
	c := &Catalog{
		items: make([]recommendation.FoodItem, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if err := validate.Struct(item); err != nil {
			return nil, common.ErrInvalidCatalog.WithErr(fmt.Errorf("item %d (%q): %w", i, item.ID, err))
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, common.ErrInvalidCatalog.WithErr(fmt.Errorf("duplicate item id %q", item.ID))
		}
		c.index[item.ID] = i
		c.items[i] = item
	}
	return c, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("region_tag", validateRegionTag)
	return validate
}

func validateRegionTag(fl validator.FieldLevel) bool {
	return regionTagPattern.MatchString(fl.Field().String())
}

// Items 回傳目錄副本
func (c *Catalog) Items() []recommendation.FoodItem {
	out := make([]recommendation.FoodItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len 食物數量
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get 依 ID 查詢
func (c *Catalog) Get(id string) (recommendation.FoodItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return recommendation.FoodItem{}, false
	}
	return c.items[i], true
}

// Filter 依餐別與地區列出食物，空字串表示不限
func (c *Catalog) Filter(category recommendation.MealCategory, region recommendation.Region) []recommendation.FoodItem {
	out := []recommendation.FoodItem{}
	for _, item := range c.items {
		if category != "" && item.Category != category {
			continue
		}
		if region != "" && item.Region != region {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories 各餐別的食物數量
func (c *Catalog) Categories() map[recommendation.MealCategory]int {
	out := make(map[recommendation.MealCategory]int, len(recommendation.MealCategories))
	for _, mc := range recommendation.MealCategories {
		out[mc] = 0
	}
	for _, item := range c.items {
		out[item.Category]++
	}
	return out
}

// Regions 目錄中出現過的地區標籤，已排序
func (c *Catalog) Regions() []string {
	seen := make(map[string]bool)
	for _, item := range c.items {
		if item.Region != "" {
			seen[string(item.Region)] = true
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
