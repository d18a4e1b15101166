/*
 * record.go, part of dScribe-tools.
 *
 * Copyright 2026 The dScribe-tools authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package sweep

import "time"

// Record is the result at one point of a sweep.
type Record struct {
	Value   float64 //of the swept parameter
	Metric  float64
	Elapsed time.Duration
}

// Series is a sequence of records, ordered as the grid that produced them.
type Series struct {
	Label   string
	Records []Record
}

// Len returns the number of records in the series.
func (S *Series) Len() int {
	return len(S.Records)
}

func (S *Series) add(v, metric float64, elapsed time.Duration) {
	S.Records = append(S.Records, Record{Value: v, Metric: metric, Elapsed: elapsed})
}

// Values returns the parameter values of the records.
func (S *Series) Values() []float64 {
	ret := make([]float64, len(S.Records))
	for i, r := range S.Records {
		ret[i] = r.Value
	}
	return ret
}

// Metrics returns the metrics of the records.
func (S *Series) Metrics() []float64 {
	ret := make([]float64, len(S.Records))
	for i, r := range S.Records {
		ret[i] = r.Metric
	}
	return ret
}

// Times returns the elapsed times of the records, in seconds.
func (S *Series) Times() []float64 {
	ret := make([]float64, len(S.Records))
	for i, r := range S.Records {
		ret[i] = r.Elapsed.Seconds()
	}
	return ret
}
