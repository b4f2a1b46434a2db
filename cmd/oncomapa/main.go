package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/config"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/geo"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/logging"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/stats"
	"github.com/FontalvoB/orisUtListadoCancer-sub001/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "oncomapa",
		Short:         "Mapa coroplético interactivo de estadísticas oncológicas por departamento",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v, cfgFile)
		},
	}

	fl := cmd.Flags()
	fl.String("metrics", "", "archivo JSON de métricas exportado por la aplicación principal")
	fl.String("log", "oncomapa.log", "archivo de log de depuración")
	fl.Bool("debug", false, "escribir log de depuración")
	fl.Bool("charts", true, "mostrar gráficos en el panel de detalle")
	fl.Bool("establishments", false, "mostrar tabla de instituciones (IPS)")
	fl.Bool("risk-tiers", false, "mostrar niveles de riesgo")
	fl.Bool("ips", false, "modo IPS: etiquetas centradas en atenciones")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "archivo de configuración YAML")

	bind := map[string]string{
		"metrics_path":        "metrics",
		"log_path":            "log",
		"debug":               "debug",
		"show_charts":         "charts",
		"show_establishments": "establishments",
		"show_risk_tiers":     "risk-tiers",
		"ips_mode":            "ips",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, fl.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(v *viper.Viper, cfgFile string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	geoData, err := geo.Load()
	if err != nil {
		return err
	}

	statsData := &stats.Dataset{ByName: map[string]stats.Metrics{}}
	if cfg.MetricsPath != "" {
		statsData, err = stats.LoadFile(cfg.MetricsPath)
		if err != nil {
			return err
		}
	}
	log.Info("datasets loaded",
		zap.Int("regions", len(geoData.Regions)),
		zap.Int("metric_keys", len(statsData.Names)))

	m := tui.New(tui.Options{
		Geo:   geoData,
		Stats: statsData,
		Caps: tui.Capabilities{
			ShowCharts:         cfg.ShowCharts,
			ShowEstablishments: cfg.ShowEstablishments,
			ShowRiskTiers:      cfg.ShowRiskTiers,
			IPSMode:            cfg.IPSMode,
		},
		OnSelect: func(key string) {
			log.Debug("selection changed", zap.String("key", key))
		},
		OnTierSelect: func(label string) {
			log.Debug("tier selected", zap.String("label", label))
		},
		Logger: log,
	})

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
