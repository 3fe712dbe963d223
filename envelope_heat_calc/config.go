package envelope_heat_calc

import (
	"gopkg.in/ini.v1"
)

// 計算の設定
type Config struct {
	NStepHourly        int
	MaxDx              float64
	SafetyFactor       float64
	MaxFilmCoefficient float64
	Parallel           bool
	Days               int // 本計算を行う日数, d
	RunUpDays          int // 助走計算を行う日数, d

	Site Site

	OutputDir string
	Plot      bool // 室温のグラフ（PNG）を出力するか否か
	Chart     bool // 室温のグラフを端末に表示するか否か

	LogLevel string
}

func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

/*
設定ファイル（ini）を読み込む。

Args:
	path: 設定ファイルのパス（空の場合は既定値）
*/
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, err
	}
	return loadCfg(file), nil
}

func loadCfg(file *ini.File) Config {
	sim := file.Section("simulation")
	site := file.Section("site")
	out := file.Section("output")
	return Config{
		NStepHourly:        sim.Key("n_step_hourly").MustInt(4),
		MaxDx:              sim.Key("max_dx").MustFloat64(0.04),
		SafetyFactor:       sim.Key("safety_factor").MustFloat64(0.5),
		MaxFilmCoefficient: sim.Key("max_film_coefficient").MustFloat64(h_max_default),
		Parallel:           sim.Key("parallel").MustBool(false),
		Days:               sim.Key("days").MustInt(365),
		RunUpDays:          sim.Key("run_up_days").MustInt(30),
		Site: Site{
			Latitude:  site.Key("latitude").MustFloat64(DefaultSite().Latitude),
			Longitude: site.Key("longitude").MustFloat64(DefaultSite().Longitude),
			Meridian:  site.Key("meridian").MustFloat64(DefaultSite().Meridian),
		},
		OutputDir: out.Key("dir").MustString("."),
		Plot:      out.Key("plot").MustBool(false),
		Chart:     out.Key("chart").MustBool(false),
		LogLevel:  file.Section("log").Key("level").MustString("info"),
	}
}

func (c Config) ModelOptions() ModelOptions {
	return ModelOptions{
		NStepHourly:        c.NStepHourly,
		MaxDx:              c.MaxDx,
		SafetyFactor:       c.SafetyFactor,
		MaxFilmCoefficient: c.MaxFilmCoefficient,
		Parallel:           c.Parallel,
	}
}
