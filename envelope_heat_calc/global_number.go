package envelope_heat_calc

// 空気の比熱, J/kg K
const c_a = 1005.0

// 空気の密度, kg/m3
const rho_a = 1.2

// ステファンボルツマン定数, W/m2 K4
const sgm = 5.670374419e-8

// 既定の放射率, -
const eps = 0.9

// 既定の日射吸収率, -
const alpha_sol = 0.7

// 絶対温度への換算, K
const kelvin = 273.15

// 重力加速度, m/s2
const g_acc = 9.81

// 既定の室温・節点温度, degree C
const theta_init = 22.0

// 既定の表面熱伝達率, W/m2 K
const h_s_default = 10.0

// 最大表面熱伝達率（安定条件の評価に用いる）, W/m2 K
const h_max_default = 20.0
