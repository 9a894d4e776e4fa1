package service

import (
	"fmt"
	"strings"

	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
)

const (
	SignalOverbought  = "overbought"
	SignalOversold    = "oversold"
	SignalBullish     = "bullish"
	SignalBearish     = "bearish"
	SignalNeutral     = "neutral"
	SignalStrongTrend = "strong_trend"
	SignalWeakTrend   = "weak_trend"
)

// IndicatorService turns raw indicator rows into the fixed-threshold
// readings the detail pages show (RSI > 70 => "Overbought" and so on) and
// reshapes series into chart datasets.
type IndicatorService struct {
	Formatter *utils.Formatter
}

func (s *IndicatorService) Interpret(name string, point model.IndicatorPoint, lastPrice float64) model.IndicatorInterpretation {
	interpretation := model.IndicatorInterpretation{
		Indicator: name,
		Values:    point.Values,
		Signal:    SignalNeutral,
	}

	switch name {
	case "rsi":
		rsi := point.Values["rsi"]
		switch {
		case rsi > 70:
			interpretation.Signal = SignalOverbought
			interpretation.Summary = fmt.Sprintf("RSI at %.2f, overbought, a pullback is possible", rsi)
		case rsi < 30:
			interpretation.Signal = SignalOversold
			interpretation.Summary = fmt.Sprintf("RSI at %.2f, oversold, a rebound is possible", rsi)
		default:
			interpretation.Summary = fmt.Sprintf("RSI at %.2f, neutral momentum", rsi)
		}
	case "ema":
		ema := point.Values["ema"]
		if lastPrice > ema {
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("Price %.2f above EMA %.2f, uptrend intact", lastPrice, ema)
		} else {
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("Price %.2f below EMA %.2f, downtrend pressure", lastPrice, ema)
		}
	case "macd":
		macd := point.Values["macd"]
		signal := point.Values["macd_signal"]
		if macd > signal {
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("MACD %.4f above signal %.4f, bullish crossover", macd, signal)
		} else {
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("MACD %.4f below signal %.4f, bearish crossover", macd, signal)
		}
	case "bbands":
		upper := point.Values["upper_band"]
		lower := point.Values["lower_band"]
		switch {
		case lastPrice > upper:
			interpretation.Signal = SignalOverbought
			interpretation.Summary = fmt.Sprintf("Price %.2f above the upper band %.2f, stretched move", lastPrice, upper)
		case lastPrice < lower:
			interpretation.Signal = SignalOversold
			interpretation.Summary = fmt.Sprintf("Price %.2f below the lower band %.2f, stretched decline", lastPrice, lower)
		default:
			interpretation.Summary = "Price inside the Bollinger Bands, no extreme reading"
		}
	case "adx":
		adx := point.Values["adx"]
		if adx >= 25 {
			interpretation.Signal = SignalStrongTrend
			interpretation.Summary = fmt.Sprintf("ADX at %.2f, trending market", adx)
		} else {
			interpretation.Signal = SignalWeakTrend
			interpretation.Summary = fmt.Sprintf("ADX at %.2f, weak or ranging market", adx)
		}
	case "atr":
		atr := point.Values["atr"]
		interpretation.Summary = fmt.Sprintf("ATR at %.4f, average true range of recent sessions", atr)
	case "aroon":
		up := point.Values["aroon_up"]
		down := point.Values["aroon_down"]
		if up > down {
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("Aroon Up %.1f over Aroon Down %.1f, upward phase", up, down)
		} else {
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("Aroon Down %.1f over Aroon Up %.1f, downward phase", down, up)
		}
	case "ichimoku":
		spanA := point.Values["senkou_span_a"]
		spanB := point.Values["senkou_span_b"]
		cloudTop := spanA
		cloudBottom := spanB
		if spanB > spanA {
			cloudTop, cloudBottom = spanB, spanA
		}
		switch {
		case lastPrice > cloudTop:
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("Price %.2f above the cloud, bullish structure", lastPrice)
		case lastPrice < cloudBottom:
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("Price %.2f below the cloud, bearish structure", lastPrice)
		default:
			interpretation.Summary = fmt.Sprintf("Price %.2f inside the cloud, indecision", lastPrice)
		}
	case "stoch":
		k := point.Values["slow_k"]
		switch {
		case k > 80:
			interpretation.Signal = SignalOverbought
			interpretation.Summary = fmt.Sprintf("Stochastic %%K at %.2f, overbought", k)
		case k < 20:
			interpretation.Signal = SignalOversold
			interpretation.Summary = fmt.Sprintf("Stochastic %%K at %.2f, oversold", k)
		default:
			interpretation.Summary = fmt.Sprintf("Stochastic %%K at %.2f, mid range", k)
		}
	case "cci":
		cci := point.Values["cci"]
		switch {
		case cci > 100:
			interpretation.Signal = SignalOverbought
			interpretation.Summary = fmt.Sprintf("CCI at %.2f, above +100, overbought", cci)
		case cci < -100:
			interpretation.Signal = SignalOversold
			interpretation.Summary = fmt.Sprintf("CCI at %.2f, below -100, oversold", cci)
		default:
			interpretation.Summary = fmt.Sprintf("CCI at %.2f, normal range", cci)
		}
	case "mom":
		mom := point.Values["mom"]
		if mom > 0 {
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("Momentum at %.4f, positive", mom)
		} else {
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("Momentum at %.4f, negative", mom)
		}
	case "pivot_points_hl":
		high := point.Values["pivot_point_h"]
		low := point.Values["pivot_point_l"]
		switch {
		case high > 0 && lastPrice > high:
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("Price %.2f above the pivot high %.2f, breakout territory", lastPrice, high)
		case low > 0 && lastPrice < low:
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("Price %.2f below the pivot low %.2f, breakdown territory", lastPrice, low)
		default:
			interpretation.Summary = "Price between pivot levels"
		}
	case "obv":
		obv := point.Values["obv"]
		interpretation.Summary = fmt.Sprintf("OBV at %.0f, volume flow reference, compare with prior readings", obv)
	case "supertrend":
		supertrend := point.Values["supertrend"]
		if lastPrice > supertrend {
			interpretation.Signal = SignalBullish
			interpretation.Summary = fmt.Sprintf("Price %.2f above Supertrend %.2f, uptrend", lastPrice, supertrend)
		} else {
			interpretation.Signal = SignalBearish
			interpretation.Summary = fmt.Sprintf("Price %.2f below Supertrend %.2f, downtrend", lastPrice, supertrend)
		}
	default:
		interpretation.Summary = fmt.Sprintf("No interpretation rules for '%s'", name)
	}

	return interpretation
}

// BuildDataset reverses provider order (newest first) into chronological
// chart series: one labels axis, the close price line, and one series per
// indicator value column.
func (s *IndicatorService) BuildDataset(series model.TimeSeries, indicators map[string]model.IndicatorSeries) model.ChartData {
	chart := model.ChartData{
		Symbol:   series.Meta.Symbol,
		Interval: series.Meta.Interval,
		Labels:   make([]string, 0, len(series.Values)),
		Price:    make([]float64, 0, len(series.Values)),
		Series:   make(map[string][]float64),
	}

	for i := len(series.Values) - 1; i >= 0; i-- {
		candle := series.Values[i]
		chart.Labels = append(chart.Labels, candle.Datetime)
		chart.Price = append(chart.Price, s.Formatter.ToFixed(candle.Close.Value(), 4))
	}

	for name, indicator := range indicators {
		columns := make(map[string][]float64)

		for i := len(indicator.Values) - 1; i >= 0; i-- {
			for column, value := range indicator.Values[i].Values {
				columns[column] = append(columns[column], value)
			}
		}

		for column, values := range columns {
			key := column
			if !strings.HasPrefix(column, name) {
				key = fmt.Sprintf("%s_%s", name, column)
			}
			chart.Series[key] = values
		}
	}

	return chart
}
