// Package websocket - websocket/metrics.go
package websocket

import (
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"zeroun-site/logger"
)

// Namespace for all site metrics
var metricsNamespace = "ZeroUnSite"

// cwClient is created lazily so tests and local runs never touch AWS.
var cwClient *cloudwatch.CloudWatch

// metricsEnabled: published only when CLOUDWATCH_METRICS=true (deployed envs).
func metricsEnabled() bool {
	return os.Getenv("CLOUDWATCH_METRICS") == "true"
}

// PublishVisitorConnections pushes the current WebSocket connection count.
func PublishVisitorConnections(count int) {
	putMetric("VisitorConnections", float64(count), "Count")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled() {
		return
	}
	if cwClient == nil {
		cwClient = cloudwatch.New(session.Must(session.NewSession()))
	}
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})
	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
