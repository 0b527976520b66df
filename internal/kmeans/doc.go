// Package kmeans reduces the number of distinct colours in an image with
// Lloyd's k-means over the colour histogram.
//
// Clustering runs on distinct colours weighted by pixel count, so its cost
// depends on colour variety rather than image size. Assignment steps use a
// kdtree built over the current centroids.
package kmeans
