//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// go:embed 不能引用上级目录，data/road.yaml 是根目录同名文件的副本，
// 修改默认参数时两处需要同步。
package mobile

import "embed"

//go:embed data/road.yaml
var dataFS embed.FS
