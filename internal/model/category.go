package model

// Category 分类参考数据
//
// 两级树结构：parent_id = 0 表示顶级分类，
// 二级分类的 parent_id 指向顶级分类 ID。会话期间视为不可变。
type Category struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string `gorm:"column:category_name;size:64;not null;index" json:"category_name"`
	ParentID     int64  `gorm:"column:parent_id;index;default:0" json:"parent_id"`
	Active       bool   `gorm:"default:true" json:"active"`
}

func (*Category) TableName() string {
	return "categories"
}

// IsTopLevel 是否顶级分类
func (c *Category) IsTopLevel() bool {
	return c.ParentID == 0
}
