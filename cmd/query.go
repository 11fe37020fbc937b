package cmd

import (
	"github.com/spf13/cobra"
)

// queryCmd 查询命令组
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "查询本地数据",
	Long:  `查询本地数据库中的商家、预约等信息。`,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
