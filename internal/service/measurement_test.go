package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/limnolab/limno-ui-api/internal/mocks"
)

func TestMeasurementService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewMeasurementService(api)

	payload := `[
		{
			"measurement_id": 12,
			"lake_name": "Lago San Pablo",
			"measurement_date": "2024-06-15",
			"values": [
				{"measurement_value_id": 101, "parameter_name": "pH", "parameter_symbol": "pH", "value": 7.4},
				{"measurement_value_id": 102, "parameter_name": "Dissolved oxygen", "value": 6.1}
			]
		}
	]`
	api.EXPECT().
		Get(gomock.Any(), gomock.Any(), "measurements/", nil).
		Return(okResult(payload), nil)

	list, err := svc.List(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lago San Pablo", list[0].LakeName)
	require.Len(t, list[0].Values, 2)
	assert.InDelta(t, 7.4, list[0].Values[0].Value, 0.001)
}

func TestMeasurementService_UpdateValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewMeasurementService(api)

	api.EXPECT().
		PutJSON(gomock.Any(), gomock.Any(), "measurements/101", map[string]any{"value": 7.9}).
		Return(okResult(`{}`), nil)

	err := svc.UpdateValue(context.Background(), testSession(), "101", UpdateValueInput{Value: "7.9"})
	require.NoError(t, err)
}

func TestMeasurementService_UpdateValue_RejectsNonNumeric(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewMeasurementService(mocks.NewMockCaller(ctrl))

	err := svc.UpdateValue(context.Background(), testSession(), "101", UpdateValueInput{Value: "high"})
	require.Error(t, err)
}

func TestMeasurementService_YearsAndSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewMeasurementService(api)

	api.EXPECT().
		Get(gomock.Any(), gomock.Any(), "measurements/years", nil).
		Return(okResult(`[2022, 2023, 2024]`), nil)
	api.EXPECT().
		Get(gomock.Any(), gomock.Any(), "measurements/3/5/2024", nil).
		Return(okResult(`[{"measurement_date":"2024-01-10","value":7.2}]`), nil)

	years, err := svc.Years(context.Background(), testSession())
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2023, 2024}, years)

	series, err := svc.Series(context.Background(), testSession(), "3", "5", 2024)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "2024-01-10", series[0].Date)
}
