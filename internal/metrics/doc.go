// Package metrics records what a generation run did.
//
// Components receive a Recorder and default to NoopRecorder, so recording
// never needs nil checks. When --metrics-file is set the CLI swaps in a
// PrometheusRecorder and writes its registry in the node_exporter textfile
// collector format after the run, which lets CI hosts track how many launch
// configurations each repository produces.
package metrics
