package service

import "math"

// Outranks 排行榜全序：平均分高者在前，平均分相同时评分数多者在前。
// SQL 侧的 ORDER BY / 排名子查询必须与此保持一致，否则当前排名与
// 快照排名会用上不同的比较器，产生虚假的涨跌标记。
func Outranks(avgA float64, countA int64, avgB float64, countB int64) bool {
	if avgA != avgB {
		return avgA > avgB
	}
	return countA > countB
}

// Round1 展示用的一位小数，排名比较始终用全精度
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
