package database

import "embed"

// SeedSQL 嵌入分类种子数据
//
//go:embed seed/*.sql
var SeedSQL embed.FS
