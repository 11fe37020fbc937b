package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/treebornwood/voicedeskk/internal/database"
	"github.com/treebornwood/voicedeskk/internal/model"
)

var (
	businessOutputType string
	businessLiveOnly   bool
)

// businessCmd 商家查询命令
var businessCmd = &cobra.Command{
	Use:   "businesses",
	Short: "列出商家",
	Long:  `列出本地数据库中的商家及其上线状态和 Agent 配置情况。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Database.Path != "" {
			_ = os.Setenv("VOICEDESK_DB_PATH", cfg.Database.Path)
		}
		db := database.GetDB()
		defer func() { _ = database.Close() }()

		query := db.Order("created_at")
		if businessLiveOnly {
			query = query.Where("is_live = ?", true)
		}

		var businesses []model.Business
		if err := query.Find(&businesses).Error; err != nil {
			return fmt.Errorf("failed to list businesses: %w", err)
		}

		// 输出结果
		if businessOutputType == "json" {
			data, _ := json.MarshalIndent(businesses, "", "  ")
			fmt.Println(string(data))
		} else {
			// 使用 lipgloss/table 表格输出
			rows := [][]string{}

			for _, b := range businesses {
				live := "draft"
				if b.IsLive {
					live = "live"
				}
				agent := "-"
				if b.AgentID != "" {
					agent = b.AgentID
				}
				rows = append(rows, []string{
					b.ID, b.BusinessName, b.BusinessType, b.Slug, live, agent,
				})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
				Headers("ID", "Name", "Type", "Slug", "Status", "Agent ID").
				Rows(rows...)

			fmt.Println(t)
			fmt.Println()
			logx.Info("Query completed, count %d", len(businesses))
		}

		return nil
	},
}

func init() {
	businessCmd.Flags().StringVarP(&businessOutputType, "output", "o", "table", "输出格式 (table/json)")
	businessCmd.Flags().BoolVar(&businessLiveOnly, "live", false, "只显示已上线商家")
	queryCmd.AddCommand(businessCmd)
}
