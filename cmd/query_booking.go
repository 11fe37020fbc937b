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
	bookingOutputType string
	bookingBusinessID string
)

// bookingCmd 预约查询命令
var bookingCmd = &cobra.Command{
	Use:   "bookings",
	Short: "列出预约",
	Long:  `按预约时间顺序列出本地数据库中的预约记录。`,
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

		query := db.Order("appointment_datetime ASC")
		if bookingBusinessID != "" {
			query = query.Where("business_id = ?", bookingBusinessID)
		}

		var bookings []model.Booking
		if err := query.Find(&bookings).Error; err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}

		// 输出结果
		if bookingOutputType == "json" {
			data, _ := json.MarshalIndent(bookings, "", "  ")
			fmt.Println(string(data))
		} else {
			// 使用 lipgloss/table 表格输出
			rows := [][]string{}

			for _, b := range bookings {
				rows = append(rows, []string{
					b.ID,
					b.BusinessID,
					b.CustomerName,
					b.ServiceRequested,
					b.AppointmentDatetime.Format("2006-01-02 15:04"),
					b.Status,
				})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
				Headers("ID", "Business", "Customer", "Service", "Appointment", "Status").
				Rows(rows...)

			fmt.Println(t)
			fmt.Println()
			logx.Info("Query completed, count %d", len(bookings))
		}

		return nil
	},
}

func init() {
	bookingCmd.Flags().StringVarP(&bookingOutputType, "output", "o", "table", "输出格式 (table/json)")
	bookingCmd.Flags().StringVar(&bookingBusinessID, "business", "", "按商家 ID 过滤")
	queryCmd.AddCommand(bookingCmd)
}
