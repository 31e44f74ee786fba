// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v2

import "github.com/prometheus/client_golang/prometheus"

var (
	hashTableResizeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "hashtable",
			Name:      "resize_total",
			Help:      "Total number of hash table resizes.",
		}, []string{"type"})
	HashTableGrowCounter     = hashTableResizeCounter.WithLabelValues("grow")
	HashTableShrinkCounter   = hashTableResizeCounter.WithLabelValues("shrink")
	HashTableExplicitCounter = hashTableResizeCounter.WithLabelValues("explicit")

	HashTableRehashedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "hashtable",
			Name:      "rehashed_elements_total",
			Help:      "Total number of elements relinked by resizes.",
		})

	HashTableAllocFailedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "hashtable",
			Name:      "alloc_failed_total",
			Help:      "Total number of failed bucket array allocations.",
		})

	HashTableReplacedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "hashtable",
			Name:      "replaced_total",
			Help:      "Total number of adds that replaced an existing key.",
		})
)

var (
	ShardBuildDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mo",
			Subsystem: "shard",
			Name:      "build_duration_seconds",
			Help:      "Bucketed histogram of the time spent building one shard.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2.0, 20),
		})

	ShardBuildKeysCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mo",
			Subsystem: "shard",
			Name:      "build_keys_total",
			Help:      "Total number of keys added by shard builds.",
		})
)
