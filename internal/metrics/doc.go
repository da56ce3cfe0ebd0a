/*
Package metrics provides Prometheus collectors for a producer/consumer run.

# Overview

The queue itself keeps no counters; the only shared state it owns is the
buffer and the finished flag. Throughput, wait times and sampled depth are
recorded here by the pipeline that drives the queue.

# Metrics

  - boundedq_items_pushed_total: items accepted by the queue, per producer
  - boundedq_items_popped_total: items handed to consumers, per consumer
  - boundedq_consumer_errors_total: consumer callbacks that returned an error
  - boundedq_push_wait_seconds: time producers spent blocked in push
  - boundedq_pop_wait_seconds: time consumers spent blocked in pop
  - boundedq_depth: last sampled number of buffered items
  - boundedq_capacity: configured capacity

# Usage

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	srv := metrics.NewServer(":9090", reg, logger)
	srv.Start()
	defer srv.Shutdown(ctx)

NewServer serves the registry on /metrics through a gin router
(gin.WrapH around promhttp.HandlerFor) and answers /healthz.
*/
package metrics
