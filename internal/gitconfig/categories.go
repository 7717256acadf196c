package gitconfig

import "fmt"

const (
	categoryFetchNameConstant        = "fetch"
	categoryMergeNameConstant        = "merge"
	categoryPullNameConstant         = "pull"
	configurationKeyTemplateConstant = "cfsync.%s"
)

// Category identifies one synchronization task family read from git configuration.
type Category string

// Supported synchronization categories.
const (
	CategoryFetch Category = Category(categoryFetchNameConstant)
	CategoryMerge Category = Category(categoryMergeNameConstant)
	CategoryPull  Category = Category(categoryPullNameConstant)
)

// ConfigurationCategories lists every category whose targets are read from git configuration.
func ConfigurationCategories() []Category {
	return []Category{CategoryFetch, CategoryMerge, CategoryPull}
}

// ConfigurationKey returns the fully qualified git configuration key for the category.
func (category Category) ConfigurationKey() string {
	return fmt.Sprintf(configurationKeyTemplateConstant, string(category))
}
