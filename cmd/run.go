package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	ehc "envelope_heat_calc/envelope_heat_calc"
	"envelope_heat_calc/server"
)

var (
	runInput       string
	runWeather     string
	runOutdoorTemp float64
	runOutput      string
	runDays        int
	runRunUpDays   int
	runStepHourly  int
	runParallel    bool
	runPlot        bool
	runChart       bool
	runServe       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a transient simulation of a building model",
	Long: `Run the simulation of a building model (JSON or YAML, local file or URL)
against an hourly weather CSV, or a constant outdoor temperature when no
weather file is given.

Results are written to the output directory:
  result_detail.csv   zone and surface state per main timestep
  result_summary.csv  zone temperature statistics and energy
  temperature.png     zone temperature plot (--plot)

Examples:
  envelope_heat_calc run -i house.yaml -w weather.csv -o out --days 7
  envelope_heat_calc run -i house.json --outdoor-temperature 0 --chart
  envelope_heat_calc run -i house.json -w weather.csv --serve :9000`,
	RunE: runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "建物定義ファイル（JSON, YAML）またはURL [required]")
	runCmd.Flags().StringVarP(&runWeather, "weather", "w", "", "気象データ（CSV）")
	runCmd.Flags().Float64Var(&runOutdoorTemp, "outdoor-temperature", 0, "気象データを指定しない場合の一定の外気温度, degree C")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "出力フォルダ")
	runCmd.Flags().IntVar(&runDays, "days", 0, "本計算を行う日数")
	runCmd.Flags().IntVar(&runRunUpDays, "run-up-days", 0, "助走計算を行う日数")
	runCmd.Flags().IntVar(&runStepHourly, "n-step-hourly", 0, "1時間を分割するステップ数（1, 2, 4, 6, 12）")
	runCmd.Flags().BoolVar(&runParallel, "parallel", false, "面の計算を並列に行う")
	runCmd.Flags().BoolVar(&runPlot, "plot", false, "室温のグラフを出力する")
	runCmd.Flags().BoolVar(&runChart, "chart", false, "室温のグラフを端末に表示する")
	runCmd.Flags().StringVar(&runServe, "serve", "", "計算結果を websocket で配信するアドレス（例: :9000）")

	runCmd.MarkFlagRequired("input")
}

// フラグで指定された値で設定を上書きする。
func applyRunFlags(cmd *cobra.Command, cfg *ehc.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = runOutput
	}
	if flags.Changed("days") {
		cfg.Days = runDays
	}
	if flags.Changed("run-up-days") {
		cfg.RunUpDays = runRunUpDays
	}
	if flags.Changed("n-step-hourly") {
		cfg.NStepHourly = runStepHourly
	}
	if flags.Changed("parallel") {
		cfg.Parallel = runParallel
	}
	if flags.Changed("plot") {
		cfg.Plot = runPlot
	}
	if flags.Changed("chart") {
		cfg.Chart = runChart
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, &cfg)

	itv, err := ehc.IntervalFromNStepHourly(cfg.NStepHourly)
	if err != nil {
		return err
	}

	b, err := ehc.LoadBuilding(runInput)
	if err != nil {
		return err
	}

	var weather ehc.WeatherSource
	if runWeather != "" {
		log.Infof("Load weather data from `%s`", runWeather)
		w, err := ehc.LoadWeather(runWeather, itv, cfg.Site)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"steps":  w.Len(),
			"t_mean": w.MeanTemperature(),
		}).Info("weather data loaded")
		weather = w
	} else {
		log.Infof("Constant outdoor temperature %g degree C", runOutdoorTemp)
		weather = ehc.ConstantWeather{CurrentWeather: ehc.CurrentWeather{DryBulbTemperature: runOutdoorTemp}}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var observers []ehc.Observer
	if runServe != "" {
		hub := server.NewHub()
		upgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		}
		srv := server.NewServer(runServe, upgrader, hub)
		go hub.Run(ctx)
		go func() {
			if err := srv.Serve(ctx); err != nil {
				log.WithError(err).Error("websocket server stopped")
			}
		}()
		observers = append(observers, hub)
	}

	result, err := ehc.Run(ctx, b, weather, cfg, observers...)
	if err != nil {
		return err
	}

	if err := writeResults(result, cfg); err != nil {
		return err
	}

	if cfg.Chart {
		fmt.Println(result.Chart(100, 15))
	}

	log.Infof("elapsed_time: %v", time.Since(start))
	return nil
}

func writeResults(result *ehc.Recorder, cfg ehc.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	write := func(name string, f func(*os.File) error) error {
		path := filepath.Join(cfg.OutputDir, name)
		log.Infof("Save calculation results to `%s`", path)
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := f(file); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	if err := write("result_detail.csv", func(f *os.File) error { return result.WriteCSV(f) }); err != nil {
		return err
	}
	if err := write("result_summary.csv", func(f *os.File) error { return result.WriteSummaryCSV(f) }); err != nil {
		return err
	}

	if cfg.Plot {
		path := filepath.Join(cfg.OutputDir, "temperature.png")
		log.Infof("Save temperature plot to `%s`", path)
		if err := result.SavePlot(path); err != nil {
			return err
		}
	}
	return nil
}
