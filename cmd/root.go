package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/file-organizer/internal"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "file-organizer",
	Short: "按扩展名、日期和大小整理目录中的文件",
	Long: `File Organizer 是一个命令行工具，把目录中的文件原地整理为
<扩展名>/<YYYY>/<MM>/<DD>/<small|medium|large>/<文件名> 的层次结构。

主要功能:
- 按创建、修改或访问时间生成日期目录
- 按可配置的阈值把文件分为 small、medium、large
- 目标已存在且内容相同时跳过，内容不同时自动添加 _N 后缀
- 支持预览模式，只输出将要执行的操作
- 重复运行是幂等的，已整理的文件保持不动`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认 "+internal.DefaultConfigPath+")")
}
